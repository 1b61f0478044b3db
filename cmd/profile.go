package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kimcharli/mac-app-positioner/internal/monitor"
	"github.com/kimcharli/mac-app-positioner/internal/profile"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Generate or update profiles from the current monitor setup",
	}

	cmd.AddCommand(newProfileGenerateCmd())
	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func newProfileGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <name>",
		Short: "Print a suggested profile for the current monitor setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, false)
			if err != nil {
				return err
			}
			reg, err := runner.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			suggestion := profile.Profile{
				Name:     args[0],
				Monitors: specsFromRegistry(reg),
				Layout: map[string]profile.Zone{
					profile.RolePrimary: {Quadrants: &profile.Quadrants{}},
				},
			}

			data, err := yaml.Marshal([]profile.Profile{suggestion})
			if err != nil {
				return fmt.Errorf("encoding suggestion: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleHeading.Render("Suggested profile (add under `profiles:`)"))
			fmt.Fprintln(out)
			fmt.Fprint(out, string(data))
			fmt.Fprintln(out, styleDim.Render("# Fill the quadrants with bundle identifiers, e.g. top_left: com.google.Chrome"))
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Rewrite a profile's monitor specs from the current setup",
		Long: `Replaces the named profile's monitor specs with the currently connected
monitors, keeping its layout. The profile is created when missing. Asks
for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			runner, err := newRunner(cmd, true)
			if err != nil {
				return err
			}
			reg, err := runner.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			specs := specsFromRegistry(reg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monitor specs for %q from the current setup:\n", name)
			for _, spec := range specs {
				fmt.Fprintf(out, "  - %s (%s)\n", spec.Resolution, spec.Role)
			}

			if !yes && !confirm(cmd, fmt.Sprintf("Update profile %q?", name)) {
				fmt.Fprintln(out, "Profile not updated.")
				return nil
			}

			cfg := runner.Config
			if existing := cfg.Profile(name); existing != nil {
				existing.Monitors = specs
			} else {
				cfg.Profiles = append(cfg.Profiles, profile.Profile{
					Name:     name,
					Monitors: specs,
					Layout: map[string]profile.Zone{
						profile.RolePrimary: {Quadrants: &profile.Quadrants{}},
					},
				})
			}

			if err := cfg.Save(configPath(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Profile %q updated in %s\n", styleOK.Render("✓"), name, configPath(cmd))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// specsFromRegistry infers profile monitor specs from a snapshot: the main
// display becomes primary, the built-in screen keeps its placeholder
// resolution, and the remaining monitors get a side role from their
// arrangement X sign.
func specsFromRegistry(reg *monitor.Registry) []profile.MonitorSpec {
	var specs []profile.MonitorSpec
	for _, m := range reg.Monitors() {
		switch {
		case m.IsBuiltin && !m.IsMain:
			specs = append(specs, profile.MonitorSpec{
				Resolution: profile.BuiltinResolution,
				Role:       profile.RoleBuiltin,
			})
		case m.IsMain:
			specs = append(specs, profile.MonitorSpec{
				Resolution: m.ResolutionKey(),
				Role:       profile.RolePrimary,
			})
		case m.ArrangementOrigin.X < 0:
			specs = append(specs, profile.MonitorSpec{Resolution: m.ResolutionKey(), Role: "left"})
		default:
			specs = append(specs, profile.MonitorSpec{Resolution: m.ResolutionKey(), Role: "right"})
		}
	}
	return specs
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
