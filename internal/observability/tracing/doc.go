// Package tracing wires OpenTelemetry into the HTTP server and the article service.
package tracing
