// Package driving provides interfaces for inbound adapters
// (primary ports). The CLI, HTTP API and directory watcher drive the
// application exclusively through these interfaces.
package driving
