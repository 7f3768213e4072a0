package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf>...",
	Short: "Ingest PDF files into the vector store",
	Long: `Extracts text from each PDF, splits it into sentence-respecting
chunks, embeds them and stores the vectors for retrieval.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := setupServices(cmd.Context()); err != nil {
		return err
	}

	var failed int
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", path, err)
			failed++
			continue
		}

		resp, err := ingestService.IngestPDF(cmd.Context(), data, filepath.Base(path))
		switch {
		case err == nil:
			cmd.Printf("%s: %d chunks stored\n", path, resp.ChunksProcessed)
		case errors.Is(err, domain.ErrNoContent):
			cmd.Printf("%s: no extractable text, skipped\n", path)
		default:
			cmd.PrintErrf("%s: %s\n", path, resp.Message)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
