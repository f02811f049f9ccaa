package logs

// Span identifies one evaluation session: a script run or a REPL lifetime.
type Span string

type spanKey struct{}

var SpanKey spanKey
