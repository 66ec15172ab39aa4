package cmd

import (
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/metcalfc/docqa/internal/display"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/metcalfc/docqa/internal/qa"
	"github.com/spf13/cobra"
)

var (
	askQuestion  string
	askFormat    string
	askAnyFormat bool
)

var askCmd = &cobra.Command{
	Use:   "ask [-q QUESTION] FILE...",
	Short: "Answer a question from the combined text of the given files",
	Example: `
  docqa ask -q "What does WDC stand for?" paper.pdf notes.docx
  docqa ask -q "Who wrote it?" --format json page.html
  docqa ask report.txt      # prompts for the question on a terminal
  `,
	Long: `
  Ask reads every file, joins their text (each file under a "===== name ====="
  header) and passes the first 4000 characters to the configured answerer.
  The first 500 characters are shown as a preview before the answer.
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.StartRun(cmd.Context())

		question := strings.TrimSpace(askQuestion)
		if question == "" && interactive() {
			input := huh.NewInput().Title("Enter your question:").Value(&question)
			if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
				return err
			}
			question = strings.TrimSpace(question)
		}
		if question == "" {
			return userFacing(pipeline.ErrNoQuestion)
		}

		answerer, err := qa.New(cfg.Answerer)
		if err != nil {
			return err
		}

		uploads, err := loadUploads(args, askAnyFormat)
		if err != nil {
			return err
		}
		if len(uploads) > 0 {
			display.Success("Great! Reading your documents now...")
		}

		ans, err := pipeline.Ask(ctx, answerer, question, uploads)
		if err != nil {
			return userFacing(err)
		}
		return pipeline.RenderAnswer(cmd.OutOrStdout(), ans, askFormat)
	},
}

// interactive reports whether a person can be prompted.
var interactive = stdinIsTerminal

func stdinIsTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

func init() {
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer")
	askCmd.Flags().StringVarP(&askFormat, "format", "f", pipeline.FormatText, "output format: text, markdown, json or yaml")
	askCmd.Flags().BoolVar(&askAnyFormat, "any-format", false, "read every file with a registered reader, not just .pdf .docx .txt .html .htm")
	rootCmd.AddCommand(askCmd)
}
