package ops

import "context"

// ProgressCallback receives short human-readable progress messages while an
// operation runs, e.g. one per page.
type ProgressCallback func(message string)

type ctxKey string

const ctxProgressKey ctxKey = "progress_cb"

// WithProgress attaches a progress callback to ctx.
func WithProgress(ctx context.Context, cb ProgressCallback) context.Context {
	return context.WithValue(ctx, ctxProgressKey, cb)
}

// progressFrom returns the attached callback, or a no-op.
func progressFrom(ctx context.Context) ProgressCallback {
	if v := ctx.Value(ctxProgressKey); v != nil {
		if cb, ok := v.(ProgressCallback); ok {
			return cb
		}
	}
	return func(string) {}
}
