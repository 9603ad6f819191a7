// Package observability provides structured logging, the JSONL operations
// trail, Prometheus metrics and window statistics for sentinel.
package observability
