package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/cvlens/internal/client"
	"github.com/raphaelgruber/cvlens/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one analysis by id",
	Long: `Fetch a single analysis by id and print the extracted fields. Cached
records are served from the local history without a network call.

Examples:
  cvlens show 4f6b2c1a
  cvlens show 4f6b2c1a-90d2-4f6e-a1f3-b8a1c2d3e4f5`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id := resolveID(args[0])

	if rec, ok := store.Find(id); ok {
		fmt.Print(render.Record(rec, 78))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	rec, err := apiClient.Get(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("no analysis with id %s", id)
		}
		return fmt.Errorf("fetch analysis: %w", err)
	}

	store.Record(rec)
	fmt.Print(render.Record(rec, 78))
	return nil
}

// resolveID expands a short id prefix to a full id when it matches
// exactly one known history entry.
func resolveID(arg string) string {
	var match string
	for _, e := range store.All() {
		if e.ID == arg {
			return arg
		}
		if len(arg) >= 4 && len(e.ID) > len(arg) && e.ID[:len(arg)] == arg {
			if match != "" {
				return arg // ambiguous prefix, use as-is
			}
			match = e.ID
		}
	}
	if match != "" {
		return match
	}
	return arg
}
