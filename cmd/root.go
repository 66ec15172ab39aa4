// Package cmd implements the docqa command line.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/metcalfc/docqa/internal/config"
	"github.com/metcalfc/docqa/internal/display"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debugFlag  bool
	configPath string

	// cfg is loaded once per invocation by the root PersistentPreRunE.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about documents and build abbreviation indexes",
	Long: `docqa reads PDF, Word, text and HTML files and either answers a question
from their combined text or lists the "full term (ACRONYM)" pairs defined in
each file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		display.Out = cmd.ErrOrStderr()

		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		level := c.Log.Level
		if debugFlag {
			level = "debug"
		}
		logger, err := logging.New(cmd.ErrOrStderr(), level)
		if err != nil {
			return err
		}

		cfg = c
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger.With(zap.String("command", cmd.Name()))))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		display.Error(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/docqa/config.yaml)")
}
