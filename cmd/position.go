package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kimcharli/mac-app-positioner/internal/positioner"
)

func newPositionCmd() *cobra.Command {
	var tolerance int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "position [profile]",
		Short: "Position applications according to a profile",
		Long: `Positions each configured application into its quadrant of the profile's
primary monitor. With no argument the profile is auto-detected from the
connected monitors.`,
		Example: `  # Auto-detect the profile and position everything
  mac-app-positioner position

  # Use a specific profile and show the plan without moving windows
  mac-app-positioner position office --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, true)
			if err != nil {
				return err
			}

			opts := positioner.Options{Tolerance: tolerance, DryRun: dryRun}
			if len(args) > 0 {
				opts.Profile = args[0]
			}

			report, err := runner.Run(cmd.Context(), opts)
			if positioner.IsStructural(err) {
				fmt.Fprintln(cmd.ErrOrStderr(),
					styleErr.Render("Display setup is unusable; no windows were moved"))
				return err
			}
			if err != nil {
				return err
			}

			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "Per-axis pixel tolerance for move results (0 = configured value)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute target rectangles without moving windows")

	return cmd
}

func printReport(cmd *cobra.Command, report *positioner.RunReport) {
	out := cmd.OutOrStdout()

	header := fmt.Sprintf("Profile %s", report.Profile)
	if report.DryRun {
		header += " (dry run)"
	}
	fmt.Fprintln(out, styleHeading.Render(header))
	if report.Primary != nil {
		fmt.Fprintf(out, "Primary monitor: %s %s at (%d, %d)\n",
			report.Primary.ID, report.Primary.ResolutionKey(),
			report.Primary.PositioningOrigin.X, report.Primary.PositioningOrigin.Y)
	}
	fmt.Fprintln(out)

	for _, res := range report.Results {
		zone := string(res.Quadrant)
		if zone == "" {
			zone = "full screen"
		}
		switch {
		case res.Err != nil:
			fmt.Fprintf(out, "  %s %s: %v\n", styleErr.Render("✗"), res.AppID, res.Err)
		case !res.WithinTolerance:
			fmt.Fprintf(out, "  %s %s -> %s, requested %s but landed at %s\n",
				styleWarn.Render("~"), res.AppID, zone, res.Target.String(), res.Actual.String())
		default:
			fmt.Fprintf(out, "  %s %s -> %s at %s\n",
				styleOK.Render("✓"), res.AppID, zone, res.Actual.String())
		}
	}

	fmt.Fprintf(out, "\nPositioned %d/%d applications in %s\n",
		report.Succeeded(), len(report.Results), report.Elapsed.Round(10*time.Millisecond))
}
