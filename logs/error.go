package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan attaches the span of ctx to err so failures can be matched with log lines.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
}
