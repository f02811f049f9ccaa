package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span for a session described by what.
// An empty parent means the span found in ctx, if any.
type NewSpan func(ctx context.Context, parent Span, what string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span, what string) (context.Context, Span) {

		var creatorSpan Span
		if v := ctx.Value(SpanKey); v != nil {
			creatorSpan = v.(Span)
		}
		if parent == "" {
			parent = creatorSpan
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		args := []any{
			"what", what,
		}
		if creatorSpan != "" && creatorSpan != parent {
			args = append(args, "creator", creatorSpan)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.InfoContext(ctx, "span start", args...)

		return ctx, span
	}
}
