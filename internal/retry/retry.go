package retry

import (
	"context"
	"errors"
	"time"

	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Config struct {
	Delays      []time.Duration
	IsRetryable func(err error) bool
}

var DefaultRetryConfig = Config{
	Delays:      []time.Duration{time.Second, 3 * time.Second, 5 * time.Second},
	IsRetryable: IsConnectionError,
}

// IsConnectionError reports failures worth repeating: the store was unreachable,
// the statement itself was never judged.
func IsConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code)
	}
	return false
}

func DoRetry(ctx context.Context, fn func() error, configs ...Config) error {
	_, err := DoRetryWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	}, configs...)
	return err
}

// DoRetryWithResult runs fn until it succeeds, fails with a non-retryable error
// or the delays are exhausted. On failure the zero value of T is returned.
func DoRetryWithResult[T any](ctx context.Context, fn func() (T, error), configs ...Config) (T, error) {
	config := DefaultRetryConfig
	if len(configs) > 0 {
		config = configs[0]
	}
	if config.IsRetryable == nil {
		config.IsRetryable = IsConnectionError
	}

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !config.IsRetryable(err) || attempt >= len(config.Delays) {
			return zero, err
		}

		logger.Log.Warn("retrying after connection failure",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return zero, errors.Join(err, ctx.Err())
		case <-time.After(config.Delays[attempt]):
		}
	}
}
