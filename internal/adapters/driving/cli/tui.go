package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/tui"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// logFile is where the TUI writes diagnostics, relative to the home directory.
const logFile = ".estateflow/estateflow.log"

type programRunner interface {
	Run() (tea.Model, error)
}

// newProgram builds the bubbletea program; tests replace it.
var newProgram = func(model tea.Model, opts ...tea.ProgramOption) programRunner {
	return tea.NewProgram(model, opts...)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface.

Views:
  1 Add Property  paste a broker message, review the extracted fields, save
  2 Properties    browse, filter, favorite and delete saved listings
  3 Dashboard     totals and the breakdown by type

Controls:
  tab / 1-3      Switch view (alt+1-3 while typing)
  ctrl+s         Extract / save
  ctrl+n         Start a new property
  ↑/↓, ←/→       Move between fields / cycle options
  f, c           Filters / clear filters
  s, d           Favorite / delete
  q, ctrl+c      Quit

Diagnostics are written to ~/.estateflow/estateflow.log.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Log lines would corrupt the alternate screen.
	if home, err := os.UserHomeDir(); err == nil {
		closeLog, err := logger.ToFile(filepath.Join(home, logFile))
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer closeLog() //nolint:errcheck
	}

	app, err := tui.NewApp(tui.NewPorts(propertyService, imageService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	followConfig(cmd.Context())

	p := newProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
