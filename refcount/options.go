package refcount

import (
	"go.uber.org/zap"
)

type refcountOptions struct {
	logger *zap.Logger
}

// Option ...
type Option func(opts *refcountOptions)

func computeRefcountOptions(options ...Option) refcountOptions {
	result := refcountOptions{
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(&result)
	}
	return result
}

// WithLogger ...
func WithLogger(logger *zap.Logger) Option {
	return func(opts *refcountOptions) {
		opts.logger = logger
	}
}
