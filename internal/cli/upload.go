package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/cvlens/internal/client"
	"github.com/raphaelgruber/cvlens/internal/intake"
	"github.com/raphaelgruber/cvlens/internal/render"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a resume and print the parsed result",
	Long: `Upload a single resume PDF to the parsing service and print the
extracted fields. The result is added to the local history.

Examples:
  cvlens upload resume.pdf
  cvlens upload ~/Documents/cv.pdf --server http://localhost:8000`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	in := intake.New()
	if err := in.Select(args[0]); err != nil {
		return err
	}
	cand, err := in.Confirm()
	if err != nil {
		return err
	}

	fmt.Printf("Uploading %s…\n", cand.Filename)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	rec, err := apiClient.Submit(ctx, cand)
	if err != nil {
		var remote *client.RemoteError
		if errors.As(err, &remote) {
			return fmt.Errorf("rejected: %s", remote.Detail)
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	store.Record(rec)
	fmt.Println()
	fmt.Print(render.Record(rec, 78))
	return nil
}
