package cmd

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/metcalfc/docqa/internal/display"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/qa"
	"github.com/metcalfc/docqa/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tuiIndex     bool
	tuiQuestion  string
	tuiAnyFormat bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui [FILE...]",
	Short: "Open the interactive terminal app",
	Long: `
  The terminal app has two modes, switched with CTRL+T: asking a question about
  documents, and building an abbreviation index. Files given on the command line
  pre-fill the file list.
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		answerer, err := qa.New(cfg.Answerer)
		if err != nil {
			return err
		}

		// The alt screen owns the terminal; logs go to a file only with --debug.
		logger := zap.NewNop()
		logPath := filepath.Join(os.TempDir(), "docqa-tui.log")
		if debugFlag {
			f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return err
			}
			defer f.Close()
			if logger, err = logging.New(f, "debug"); err != nil {
				return err
			}
		}

		mode := tui.ModeAsk
		if tuiIndex {
			mode = tui.ModeIndex
		}
		m := tui.New(tui.Options{
			Answerer:  answerer,
			Mode:      mode,
			Question:  tuiQuestion,
			Files:     args,
			AnyFormat: tuiAnyFormat,
			Context:   logging.WithLogger(ctx, logger),
		})

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return err
		}
		if debugFlag {
			display.Info("Debug log written to " + logPath)
		}
		return nil
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiIndex, "index", false, "start in abbreviation index mode")
	tuiCmd.Flags().StringVarP(&tuiQuestion, "question", "q", "", "pre-fill the question")
	tuiCmd.Flags().BoolVar(&tuiAnyFormat, "any-format", false, "read every file with a registered reader")
	rootCmd.AddCommand(tuiCmd)
}
