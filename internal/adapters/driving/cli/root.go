// Package cli provides the cobra command tree. Commands drive the core
// services through the driving ports; all adapter wiring happens here.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/adapters/driven/embedding"
	ollamaembed "github.com/docsift/docsift/internal/adapters/driven/embedding/ollama"
	pdfextract "github.com/docsift/docsift/internal/adapters/driven/extractor/pdf"
	ollamallm "github.com/docsift/docsift/internal/adapters/driven/llm/ollama"
	sqliteregistry "github.com/docsift/docsift/internal/adapters/driven/registry/sqlite"
	"github.com/docsift/docsift/internal/adapters/driven/vectorstore/memory"
	"github.com/docsift/docsift/internal/adapters/driven/vectorstore/qdrant"
	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/core/services"
	"github.com/docsift/docsift/internal/logger"
)

// Persistent flags.
var (
	verboseFlag bool
	configPath  string
	memoryFlag  bool
)

// Wired services. Package-level so command tests can substitute mocks.
var (
	cfg           config.Config
	vectorStore   driven.VectorStore
	registry      driven.DocumentRegistry
	ingestService driving.IngestService
	searchService driving.SearchService
	ragService    driving.RagService
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Semantic search and RAG over PDF documents",
	Long: `docsift ingests PDF documents into a vector store and answers
natural-language questions about them using retrieval-augmented
generation against a local Ollama model host.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docsift/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&memoryFlag, "memory", false, "use an in-process vector store (development only)")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// setupServices wires adapters and services, then runs the one-time
// collection initialization gate. No ingestion or search proceeds until
// that gate passes. Idempotent so tests can pre-wire mocks.
func setupServices(ctx context.Context) error {
	if ingestService != nil && searchService != nil && ragService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	embedder := embedding.NewRateLimited(ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    cfg.Ollama.BaseURL,
		Model:      cfg.Ollama.EmbedModel,
		Dimensions: cfg.Ollama.Dimensions,
	}), cfg.Ingest.EmbedRPS)

	if memoryFlag {
		vectorStore = memory.NewStore(embedder)
	} else {
		vectorStore = qdrant.NewStore(qdrant.Config{
			BaseURL:    cfg.Qdrant.BaseURL,
			APIKey:     cfg.Qdrant.APIKey,
			Collection: cfg.Qdrant.Collection,
		}, embedder)
	}

	llm := ollamallm.NewLLMService(ollamallm.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.ChatModel,
	})

	// The registry is optional: a broken local database should not stop
	// ingestion, the vector store is the source of truth.
	registry, err = sqliteregistry.NewRegistry(cfg.Ingest.DataDir)
	if err != nil {
		logger.Warn("Document registry unavailable: %v", err)
		registry = nil
	}

	ingestService = services.NewIngestionService(pdfextract.NewExtractor(), vectorStore, registry, cfg.Chunking.MaxChunkSize)
	searchService = services.NewSearchService(vectorStore)
	ragService = services.NewRagOrchestrator(vectorStore, llm)

	if err := vectorStore.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("initialize vector store: %w", err)
	}
	return nil
}
