package memo

import (
	"context"
	"log/slog"
	"time"
)

// Operation names reported to observers.
const (
	OpInvoke  = "invoke"
	OpCompute = "compute"
	OpPeek    = "peek"
	OpWarm    = "warm"
)

// Observer receives events for memo operations.
// It is called after each operation completes. OpCompute events are emitted
// from the goroutine running the shared computation.
type Observer interface {
	OnMemoOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver)

// OnMemoOp implements Observer.
func (f ObserverFunc) OnMemoOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver) {
	if f == nil {
		return
	}
	f(ctx, op, key, hit, err, dur, driver)
}

// NewLogObserver writes every operation event to logger as a structured record.
// Failures log at warn, computations at info, everything else at debug.
// @group Observability
//
// Example: log memo activity
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	m := memo.Wrap(fn, memo.WithObserver(memo.NewLogObserver(logger)))
//	_, _ = m.Invoke(context.Background(), 20)
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return ObserverFunc(func(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver) {
		attrs := []slog.Attr{
			slog.String("op", op),
			slog.String("key", key),
			slog.Bool("hit", hit),
			slog.Duration("dur", dur),
			slog.String("driver", string(driver)),
		}
		level := slog.LevelDebug
		switch {
		case err != nil:
			level = slog.LevelWarn
			attrs = append(attrs, slog.Any("err", err))
		case op == OpCompute:
			level = slog.LevelInfo
		}
		logger.LogAttrs(ctx, level, "memo "+op, attrs...)
	})
}
