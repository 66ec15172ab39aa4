package cmd

import (
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	indexFormat    string
	indexAnyFormat bool
)

var indexCmd = &cobra.Command{
	Use:   "index FILE...",
	Short: "List the abbreviations defined in each file",
	Example: `
  docqa index article.pdf
  docqa index --format yaml a.docx b.html
  `,
	Long: `
  Index looks for patterns like "weighted degree centrality (WDC)" in each file
  and prints one alphabetical index per file. Files are never merged; when the
  same acronym is defined twice in a file, the first definition wins.
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.StartRun(cmd.Context())

		uploads, err := loadUploads(args, indexAnyFormat)
		if err != nil {
			return err
		}

		results, err := pipeline.Index(ctx, uploads)
		if err != nil {
			return userFacing(err)
		}
		return pipeline.RenderIndex(cmd.OutOrStdout(), results, indexFormat)
	},
}

func init() {
	indexCmd.Flags().StringVarP(&indexFormat, "format", "f", pipeline.FormatText, "output format: text, markdown, json or yaml")
	indexCmd.Flags().BoolVar(&indexAnyFormat, "any-format", false, "read every file with a registered reader, not just .pdf .docx .txt .html .htm")
	rootCmd.AddCommand(indexCmd)
}
