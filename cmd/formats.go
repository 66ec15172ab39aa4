package cmd

import (
	"fmt"
	"strings"

	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/metcalfc/docqa/internal/reader"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List accepted upload types and the readers behind them",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Accepted uploads: %s\n\n", strings.Join(pipeline.AcceptedExtensions, " "))
		fmt.Fprintln(out, "Readers (use --any-format for the rest):")
		for _, f := range reader.SupportedFormats() {
			fmt.Fprintf(out, "  %s\n", f)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
