package suffixtree

import (
	"go.uber.org/zap"

	"github.com/seqeron/go-suffixtree/layout"
)

type buildOptions struct {
	log    *zap.Logger
	layout layout.NodeLayout
}

// Option configures Build and Load calls.
type Option func(*buildOptions)

// WithLogger attaches a zap logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *buildOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithLayout forces a node format instead of the size-based automatic
// choice. Forcing the compact format for a text it cannot address makes the
// build fail with layout.ErrOffsetRange.
func WithLayout(nl layout.NodeLayout) Option {
	return func(o *buildOptions) {
		if nl != nil {
			o.layout = nl
		}
	}
}

func applyOptions(opts []Option) buildOptions {
	o := buildOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
