package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "mac-app-positioner",
		Short: "Position macOS application windows across monitors",
		Long: `Mac App Positioner places application windows into quadrants of a chosen
primary display based on named profiles.

A profile describes a monitor setup by resolution and assigns applications
to quadrants; the tool detects which profile matches the connected
monitors, translates between the display-arrangement and window-positioning
coordinate systems, and moves each window to its corner.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the YAML config file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newScreensCmd())
	cmd.AddCommand(newAppsCmd())
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newPositionCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newPermissionsCmd())

	return cmd
}
