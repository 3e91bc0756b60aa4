package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/cvlens/internal/controller"
	"github.com/raphaelgruber/cvlens/internal/intake"
	"github.com/raphaelgruber/cvlens/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive resume browser",
	Long: `Open the interactive browser: upload resumes, watch parsing progress,
and flip through past analyses.

Examples:
  cvlens browse
  cvlens browse --server http://parser.internal:8000`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the browser needs a terminal; use 'cvlens upload' or 'cvlens history' in scripts")
	}

	ctrl := controller.New(intake.New(), store, logger)
	return tui.Run(ctrl, apiClient, cfg.RequestTimeout)
}
