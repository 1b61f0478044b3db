package cmd

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kimcharli/mac-app-positioner/internal/monitor"
)

func newScreensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List connected monitors with both coordinate systems",
		Long: `Lists every connected monitor with its resolution, display-arrangement
origin, derived window-positioning origin, and physical relation to the
main display.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reg, err := runner.Snapshot(cmd.Context())
			if err != nil && reg == nil {
				if cached := runner.CachedOrigins(); len(cached) > 0 {
					fmt.Fprintln(out, styleWarn.Render("Live enumeration failed; last known positioning origins:"))
					for _, id := range slices.Sorted(maps.Keys(cached)) {
						h := cached[id]
						fmt.Fprintf(out, "  %s at (%d, %d)\n", id, h.PositioningX, h.PositioningY)
					}
				}
				return err
			}

			fmt.Fprintln(out, styleHeading.Render("Connected monitors"))
			for _, m := range reg.Monitors() {
				marker := ""
				if m.IsMain {
					marker = styleMain.Render(" (main)")
				}
				if m.IsBuiltin {
					marker += styleDim.Render(" [built-in]")
				}
				fmt.Fprintf(out, "\n  %s%s\n", m.ID, marker)
				fmt.Fprintf(out, "    Resolution:   %s\n", m.ResolutionKey())
				fmt.Fprintf(out, "    Arrangement:  (%d, %d)\n", m.ArrangementOrigin.X, m.ArrangementOrigin.Y)
				fmt.Fprintf(out, "    Positioning:  (%d, %d) %s\n",
					m.PositioningOrigin.X, m.PositioningOrigin.Y,
					styleDim.Render("["+string(m.Relation)+"]"))
			}

			if errors.Is(err, monitor.ErrConfiguration) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, styleWarn.Render("Warning: "+err.Error()))
			}
			return nil
		},
	}
}
