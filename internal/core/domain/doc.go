// Package domain contains the core value objects of the document search
// pipeline. These are pure data types with no knowledge of Ollama, Qdrant
// or any other infrastructure.
package domain
