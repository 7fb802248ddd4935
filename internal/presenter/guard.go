package presenter

import (
	"context"

	"codeberg.org/capworks/portal/internal/logger"
)

type Operation func(ctx context.Context) error

// wraps op so that failures are forwarded for presentation.
// with showError the failure is reported and swallowed, otherwise it is
// returned to the caller untouched.
func Guard(fwd Forwarder, showError bool, op Operation) Operation {
	return func(ctx context.Context) error {
		_, err := Call(ctx, fwd, showError, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, op(ctx)
		})
		return err
	}
}

// runs fn with the same failure policy as Guard
func Call[T any](ctx context.Context, fwd Forwarder, showError bool, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}

	if !showError {
		return v, err
	}

	forward(ctx, fwd, err)

	var zero T
	return zero, nil
}

func forward(ctx context.Context, fwd Forwarder, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error("error forwarder panicked", "panic", r, "error", err)
		}
	}()

	if fwd == nil {
		logger.FromContext(ctx).Warn("no error forwarder, dropping error", "error", err)
		return
	}

	fwd.Forward(err)
}
