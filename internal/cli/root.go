// Package cli wires the cobra command tree: the bare command starts the
// interactive TUI, `serve` runs the bundled REST backend.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/update"
)

func NewRootCmd() *cobra.Command {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Terminal client for the taskdeck project and task tracker",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base URL of the taskdeck REST API")
	cmd.Flags().BoolVar(&cfg.RequireTaskProject, "require-project", cfg.RequireTaskProject, "refuse to save tasks without a project")
	cmd.Flags().BoolVar(&cfg.DesktopNotifications, "notify", cfg.DesktopNotifications, "send desktop notifications for status changes")

	cmd.AddCommand(newServeCmd())
	return cmd
}

func runTUI(cfg update.RuntimeConfig) error {
	var notifier update.Notifier = update.NoopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecNotifier{}
	}
	client := api.NewClient(cfg.APIBaseURL)
	program := tea.NewProgram(update.NewModel(client, cfg, notifier), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
