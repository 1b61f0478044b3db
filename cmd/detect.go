package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimcharli/mac-app-positioner/internal/profile"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect which profile matches the connected monitors",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name, err := runner.Detect(cmd.Context())
			if errors.Is(err, profile.ErrNoMatch) {
				fmt.Fprintln(out, styleWarn.Render("No matching profile"))
				fmt.Fprintln(out, styleDim.Render(err.Error()))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Detected profile: %s\n", styleOK.Render(name))
			return nil
		},
	}
}
