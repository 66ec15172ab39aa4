package cmd

import (
	"github.com/metcalfc/docqa/internal/api"
	"github.com/metcalfc/docqa/internal/display"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/qa"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ask and index actions over HTTP",
	Long: `
  Serve exposes POST /api/ask and POST /api/index (multipart form uploads in the
  "files" field, plus "question" for ask), GET /api/formats and GET /api/health.
  `,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		answerer, err := qa.New(cfg.Answerer)
		if err != nil {
			return err
		}

		serverCfg := cfg.Server
		if serveAddr != "" {
			serverCfg.Addr = serveAddr
		}

		s, err := api.NewServer(answerer, logging.FromContext(ctx), serverCfg, version)
		if err != nil {
			return err
		}
		display.Info("Listening on http://" + serverCfg.Addr)
		return s.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
