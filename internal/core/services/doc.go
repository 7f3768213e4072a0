// Package services implements the application use cases: the ingestion
// pipeline, plain semantic search and the RAG orchestrator. Services hold
// no per-request state; all external collaborators are injected driven
// ports constructed once at startup.
package services
