package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/core/domain"
)

var (
	askMaxResults int
	askThreshold  float32
	askSources    bool
	askJSON       bool
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Ask a question about ingested documents",
	Long: `Retrieves the most relevant chunks for the question and generates
a grounded answer with the configured chat model, citing source
documents and pages.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askMaxResults, "limit", "n", domain.DefaultRagMaxResults, "number of chunks to retrieve as context")
	askCmd.Flags().Float32Var(&askThreshold, "threshold", domain.DefaultRagThreshold, "minimum similarity score")
	askCmd.Flags().BoolVar(&askSources, "sources", true, "include source documents in the output")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := setupServices(cmd.Context()); err != nil {
		return err
	}

	resp := ragService.Ask(cmd.Context(), domain.RagSearchRequest{
		Query:                  args[0],
		MaxResults:             askMaxResults,
		Threshold:              askThreshold,
		IncludeSourceDocuments: askSources,
	})

	if askJSON {
		return printJSON(cmd, resp)
	}

	if !resp.Success {
		return errors.New(resp.ErrorMessage)
	}

	cmd.Println(resp.GeneratedAnswer)

	if len(resp.SourceDocuments) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, doc := range resp.SourceDocuments {
			cmd.Printf("  - %s, page %d (%.2f)\n", doc.FileName, doc.PageNumber, doc.Score)
		}
	}

	cmd.Println()
	cmd.Printf("(%0.0f ms", resp.ResponseTimeMs)
	if resp.TokensUsed > 0 {
		cmd.Printf(", %d tokens", resp.TokensUsed)
	}
	cmd.Println(")")
	return nil
}
