// Command docsift ingests PDF documents into a vector store and answers
// questions about them with retrieval-augmented generation.
package main

import (
	"os"

	"github.com/docsift/docsift/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
