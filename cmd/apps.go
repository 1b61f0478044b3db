package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newAppsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List running applications with their bundle identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, false)
			if err != nil {
				return err
			}

			apps, err := runner.Backend.RunningApps(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleHeading.Render("Running applications"))
			for _, app := range apps {
				fmt.Fprintf(out, "  %s %s\n", app.Name, styleDim.Render("("+app.BundleID+")"))
			}
			return nil
		},
	}
}
