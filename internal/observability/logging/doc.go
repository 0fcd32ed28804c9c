// Package logging builds the service's slog logger and carries request and
// trace ids, plus a per-request logger, through the context.
//
// Example usage:
//
//	import "news-portal/internal/observability/logging"
//
//	logger := logging.NewLogger(cfg.LogLevel)
//	slog.SetDefault(logger)
//
//	func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.WithRequestID(r.Context(), h.Logger)
//	    logger.Info("listing articles")
//	}
package logging
