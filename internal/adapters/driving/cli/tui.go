package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui"
	"github.com/custodia-labs/docchat/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docchat.

The TUI lets you pick a document, upload it, and hold a conversation about
it. Backend health is probed at start and shown in the status bar. Edits to
the config file are applied while the TUI runs.

Controls:
  ↑/k, ↓/j  - Navigate the menu
  Enter     - Select / Upload / Send question
  PgUp/PgDn - Scroll the transcript
  Ctrl+U    - Jump from chat to upload
  Esc       - Back to menu
  Ctrl+C    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if uploadController == nil || conversationController == nil {
		return errServicesNotConfigured
	}

	ports := tui.NewPorts(uploadController, conversationController)
	ports.Health = healthService
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	app.WithContext(ctx)

	// Log lines would corrupt the alternate screen
	redirectLogs()
	defer func() {
		_ = logger.Sync()
		logger.SetOutput(os.Stderr)
	}()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				p.Send(app.ReloadSettings())
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("config watch stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// redirectLogs sends log output to logging.file, or drops it when no file
// is configured.
func redirectLogs() {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Logging.File != "" {
			logger.SetFile(s.Logging.File)
			logger.Section("docchat tui")
			return
		}
	}
	logger.SetOutput(io.Discard)
}
