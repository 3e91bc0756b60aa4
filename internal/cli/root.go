// Package cli provides the command-line interface for cvlens.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/cvlens/internal/client"
	"github.com/raphaelgruber/cvlens/internal/config"
	"github.com/raphaelgruber/cvlens/internal/history"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	serverURL string

	// Shared wiring built in PersistentPreRunE
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	apiClient  *client.Client
	store      *history.Store
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cvlens",
	Short: "Terminal client for the resume parsing service",
	Long: `CVLens uploads resume PDFs to the parsing service, shows the extracted
fields, and keeps a browsable history of past analyses.

Run without arguments (or with 'browse') for the interactive browser, or
use the one-shot commands for scripting.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)

		apiClient = client.New(cfg.ServerURL, cfg.RequestTimeout)
		store = history.New(cfg.HistoryFile, logger)

		logger.Debug("configured", "server", cfg.ServerURL, "history", cfg.HistoryFile)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
	// Bare invocation opens the browser.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "parsing service URL (overrides config)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}
