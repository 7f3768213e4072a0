// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). Services depend on these abstractions so
// that backends can be swapped without touching orchestration logic.
package driven
