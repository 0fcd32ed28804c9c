// Package observability groups the logging, metrics and tracing helpers.
//
// Subpackages:
//   - logging: slog JSON logger with request and trace id propagation
//   - metrics: Prometheus business metrics for articles and accounts
//   - tracing: OpenTelemetry provider setup, HTTP middleware and span helpers
//
// Example usage:
//
//	logger := logging.NewLogger("info")
//	shutdown := tracing.InitProvider("news-portal", version)
//	defer shutdown(context.Background())
//
//	metrics.RecordArticleOperation("create", nil, time.Since(start))
package observability
