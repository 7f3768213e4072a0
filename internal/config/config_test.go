package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "nomic-embed-text", cfg.Ollama.EmbedModel)
	assert.Equal(t, "llama3.2", cfg.Ollama.ChatModel)
	assert.Equal(t, 768, cfg.Ollama.Dimensions)
	assert.Equal(t, "http://localhost:6333", cfg.Qdrant.BaseURL)
	assert.Equal(t, "pdf_documents", cfg.Qdrant.Collection)
	assert.Equal(t, 500, cfg.Chunking.MaxChunkSize)
	assert.Zero(t, cfg.Ingest.EmbedRPS)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9090"

[ollama]
chat_model = "mistral"

[qdrant]
base_url = "http://qdrant.internal:6333"
api_key = "secret"

[ingest]
embed_rps = 5.0
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "mistral", cfg.Ollama.ChatModel)
	assert.Equal(t, "http://qdrant.internal:6333", cfg.Qdrant.BaseURL)
	assert.Equal(t, "secret", cfg.Qdrant.APIKey)
	assert.InDelta(t, 5.0, cfg.Ingest.EmbedRPS, 1e-9)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "nomic-embed-text", cfg.Ollama.EmbedModel)
	assert.Equal(t, "pdf_documents", cfg.Qdrant.Collection)
	assert.Equal(t, 500, cfg.Chunking.MaxChunkSize)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\naddr = :::"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
