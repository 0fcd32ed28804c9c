// Package resilience groups the fault tolerance helpers used around the
// media store API.
//
//   - circuitbreaker stops calling a failing dependency for a while
//   - retry repeats idempotent calls with exponential backoff and jitter
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.MediaStoreConfig())
//	err := cb.Run(func() error {
//	    return retry.WithBackoff(ctx, retry.MediaDeleteConfig(), deleteAsset)
//	})
package resilience
