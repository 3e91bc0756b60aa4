package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/cvlens/internal/render"
)

var historyLocal bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses, newest first",
	Long: `List past analyses from the parsing service, newest first.

Examples:
  cvlens history
  cvlens history --local   # list only the local snapshot, no network`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyLocal, "local", false, "skip the server and list the local snapshot")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !historyLocal {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
		defer cancel()

		entries, err := apiClient.List(ctx)
		if err != nil {
			return fmt.Errorf("list analyses: %w", err)
		}
		store.MergeStubs(entries)
	}

	fmt.Print(render.Entries(store.All(), time.Now()))
	return nil
}
