package taicalc

import (
	"io"
	"log/slog"
)

type Options struct {
	Stdout   io.Writer    // print output; if nil, discarded
	Logger   *slog.Logger // if nil, nothing is logged
	MaxDepth int          // closure call depth budget; 0 means unlimited
}
