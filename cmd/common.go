package cmd

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kimcharli/mac-app-positioner/internal/config"
	"github.com/kimcharli/mac-app-positioner/internal/platform"
	"github.com/kimcharli/mac-app-positioner/internal/positioner"
)

// Styling with lipgloss for the inspection commands.
var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleMain    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// newRunner builds the pipeline with the native backend and the loaded
// config. withConfig is false for commands that only inspect the platform.
func newRunner(cmd *cobra.Command, withConfig bool) (*positioner.Runner, error) {
	backend, err := platform.New()
	if err != nil {
		return nil, err
	}

	runner := &positioner.Runner{
		Backend: backend,
		Config:  config.Default(),
	}

	if withConfig {
		cfg, err := config.Load(configPath(cmd))
		if err != nil {
			return nil, err
		}
		runner.Config = cfg
	}

	if path, err := platform.DefaultHintPath(); err == nil {
		runner.Hints = platform.NewFileHintStore(path)
	} else {
		slog.Debug("positioning hint store disabled", "error", err)
	}

	return runner, nil
}
