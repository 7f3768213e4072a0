// Package config loads docsift configuration from a TOML file.
// Missing files and missing keys fall back to defaults, so a bare
// installation works against local Ollama and Qdrant out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Ollama   Ollama   `toml:"ollama"`
	Qdrant   Qdrant   `toml:"qdrant"`
	Chunking Chunking `toml:"chunking"`
	Ingest   Ingest   `toml:"ingest"`
}

// Server configures the HTTP API.
type Server struct {
	// Addr is the listen address for `docsift serve`.
	Addr string `toml:"addr"`
}

// Ollama configures the embedding and chat model host.
type Ollama struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string `toml:"base_url"`

	// EmbedModel is the embedding model name.
	EmbedModel string `toml:"embed_model"`

	// ChatModel is the answer generation model name.
	ChatModel string `toml:"chat_model"`

	// Dimensions is the embedding vector size; must match the model.
	Dimensions int `toml:"dimensions"`
}

// Qdrant configures the vector store.
type Qdrant struct {
	// BaseURL is the Qdrant REST endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey is sent as the api-key header when non-empty.
	APIKey string `toml:"api_key"`

	// Collection is the collection name.
	Collection string `toml:"collection"`
}

// Chunking configures the sentence chunker.
type Chunking struct {
	// MaxChunkSize is the soft chunk size bound in characters.
	MaxChunkSize int `toml:"max_chunk_size"`
}

// Ingest configures the ingestion pipeline.
type Ingest struct {
	// EmbedRPS caps embedding requests per second during ingestion.
	// Zero disables the cap.
	EmbedRPS float64 `toml:"embed_rps"`

	// DataDir holds the document registry database.
	// Empty means ~/.docsift/data.
	DataDir string `toml:"data_dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr: ":8080",
		},
		Ollama: Ollama{
			BaseURL:    "http://localhost:11434",
			EmbedModel: "nomic-embed-text",
			ChatModel:  "llama3.2",
			Dimensions: 768,
		},
		Qdrant: Qdrant{
			BaseURL:    "http://localhost:6333",
			Collection: "pdf_documents",
		},
		Chunking: Chunking{
			MaxChunkSize: 500,
		},
	}
}

// DefaultPath returns ~/.docsift/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docsift", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
