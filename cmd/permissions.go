package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "Check whether accessibility permissions are granted",
		Long: `Moving other applications' windows requires the accessibility permission.
This command reports whether the current binary holds it and, if not, how
to grant it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if runner.Backend.Trusted() {
				fmt.Fprintln(out, styleOK.Render("✓ Accessibility permissions are granted"))
				return nil
			}

			exe, _ := os.Executable()
			fmt.Fprintln(out, styleErr.Render("✗ Accessibility permissions not granted"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Grant them in System Settings > Privacy & Security > Accessibility:")
			fmt.Fprintln(out, "  1. Click the '+' button")
			fmt.Fprintln(out, "  2. Press Cmd+Shift+G and paste this path:")
			fmt.Fprintf(out, "     %s\n", exe)
			fmt.Fprintln(out, "  3. Add the executable to the list")
			return nil
		},
	}
}
