package upstream

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/app/utils/metrics"
)

// RetryPolicy bounds how often a single upstream operation is attempted.
type RetryPolicy struct {
	// MaxAttempts caps the total number of attempts, first call included.
	MaxAttempts uint
	// MaxRateLimitRetries caps retries caused by HTTP 429.
	MaxRateLimitRetries int
	InitialInterval     time.Duration
	MaxInterval         time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:         3,
		MaxRateLimitRetries: 1,
		InitialInterval:     500 * time.Millisecond,
		MaxInterval:         5 * time.Second,
	}
}

// Call runs fn under the retry policy: rate limits are retried at most MaxRateLimitRetries
// times, transient failures until MaxAttempts, and every other failure is returned at once.
func Call[T any](ctx context.Context, policy RetryPolicy, service Service, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	rateLimited := 0
	attempt := 0
	op := func() (T, error) {
		attempt++
		start := time.Now()
		result, err := fn(ctx)
		metrics.ObserveUpstreamCall(string(service), operation, outcomeLabel(err), time.Since(start))
		if err == nil {
			return result, nil
		}

		entry := logger.GetLogger().WithFields(logrus.Fields{
			"service":   service,
			"operation": operation,
			"attempt":   attempt,
		})
		switch {
		case errors.Is(err, ErrRateLimited):
			rateLimited++
			if rateLimited > policy.MaxRateLimitRetries {
				return result, backoff.Permanent(err)
			}
			entry.Warnf("upstream rate limited, backing off: %v", err)
			return result, err
		case errors.Is(err, ErrTransientNetwork):
			entry.Warnf("upstream transient failure: %v", err)
			return result, err
		default:
			return result, backoff.Permanent(err)
		}
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = policy.InitialInterval
	expBackoff.MaxInterval = policy.MaxInterval

	maxAttempts := policy.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	result, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(maxAttempts),
	)
	if err == nil {
		return result, nil
	}
	var upstreamErr *Error
	if !errors.As(err, &upstreamErr) {
		err = Transport(service, operation, err)
	}
	return result, err
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAuth):
		return "auth_error"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "transient"
	}
}
