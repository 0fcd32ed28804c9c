package media

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"news-portal/internal/domain/entity"
	"news-portal/internal/resilience/circuitbreaker"
	"news-portal/internal/resilience/retry"
)

// ErrUnavailable is wrapped into the UploadError returned while the circuit is open.
var ErrUnavailable = errors.New("media store unavailable")

// Guarded protects a Store:
//   - a token bucket throttles calls to the provider
//   - a circuit breaker fails fast while the provider is down
//   - deletes are retried with backoff, uploads are not
type Guarded struct {
	next     Store
	limiter  *rate.Limiter
	breaker  *circuitbreaker.CircuitBreaker
	retry    retry.Config
	recorder Recorder
}

// GuardOptions configures NewGuarded. Zero values select the defaults.
type GuardOptions struct {
	RatePerSecond float64
	Burst         int
	Breaker       circuitbreaker.Config
	DeleteRetry   retry.Config
	Recorder      Recorder
}

// NewGuarded wraps next.
func NewGuarded(next Store, opts GuardOptions) *Guarded {
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	if opts.Breaker.Name == "" {
		opts.Breaker = circuitbreaker.MediaStoreConfig()
	}
	if opts.DeleteRetry.MaxAttempts == 0 {
		opts.DeleteRetry = retry.MediaDeleteConfig()
	}
	if opts.Recorder == nil {
		opts.Recorder = PrometheusRecorder{}
	}

	return &Guarded{
		next:     next,
		limiter:  rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Burst),
		breaker:  circuitbreaker.New(opts.Breaker),
		retry:    opts.DeleteRetry,
		recorder: opts.Recorder,
	}
}

// BreakerState reports the circuit breaker state: closed, half-open or open.
func (g *Guarded) BreakerState() string {
	return g.breaker.State().String()
}

// Upload runs one guarded upload.
func (g *Guarded) Upload(ctx context.Context, file entity.MediaFile, folder string) (entity.MediaAsset, error) {
	start := time.Now()
	var asset entity.MediaAsset

	err := g.call(ctx, "upload", folder, func() error {
		var err error
		asset, err = g.next.Upload(ctx, file, folder)
		return err
	})
	g.observe(ctx, "upload", folder, start, err)
	return asset, err
}

// Delete runs a guarded delete, retrying transient failures.
func (g *Guarded) Delete(ctx context.Context, publicID string) error {
	start := time.Now()

	err := retry.WithBackoff(ctx, g.retry, func() error {
		return g.call(ctx, "delete", publicID, func() error {
			return g.next.Delete(ctx, publicID)
		})
	})
	g.observe(ctx, "delete", publicID, start, err)
	return asUploadError("delete", publicID, err)
}

func (g *Guarded) call(ctx context.Context, op, target string, fn func() error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return &entity.UploadError{Op: op, Target: target, Err: err}
	}

	err := g.breaker.Run(fn)
	if circuitbreaker.IsRejection(err) {
		slog.WarnContext(ctx, "media store circuit breaker open, request rejected",
			slog.String("op", op),
			slog.String("state", g.breaker.State().String()))
		return &entity.UploadError{Op: op, Target: target, Err: ErrUnavailable}
	}
	return err
}

func (g *Guarded) observe(ctx context.Context, op, target string, start time.Time, err error) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrUnavailable), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = "rejected"
	default:
		status = "failure"
	}
	g.recorder.Record(op, status, time.Since(start))

	if err != nil {
		slog.ErrorContext(ctx, "media store call failed",
			slog.String("op", op),
			slog.String("target", target),
			slog.String("status", status),
			slog.Any("error", err))
	}
}

// asUploadError keeps the UploadError contract after retry wrapping.
func asUploadError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	var ue *entity.UploadError
	if errors.As(err, &ue) {
		return ue
	}
	return &entity.UploadError{Op: op, Target: target, Err: err}
}
