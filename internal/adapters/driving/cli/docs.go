package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var docsJSON bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List ingested documents",
	Long:  `Lists the files recorded by the document registry, most recent first.`,
	Args:  cobra.NoArgs,
	RunE:  runDocs,
}

func init() {
	docsCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, _ []string) error {
	if err := setupServices(cmd.Context()); err != nil {
		return err
	}
	if registry == nil {
		return errors.New("document registry not available")
	}

	docs, err := registry.List(cmd.Context())
	if err != nil {
		return err
	}

	if docsJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%s  %s (%d pages, %d chunks)\n",
			doc.IngestedAt.Local().Format("2006-01-02 15:04"),
			doc.FileName, doc.Pages, doc.Chunks)
	}
	return nil
}
