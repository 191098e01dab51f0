package gate

import (
	"go.uber.org/zap"
)

type gateOptions struct {
	logger *zap.Logger
	name   string
}

// Option ...
type Option func(opts *gateOptions)

func computeGateOptions(options ...Option) gateOptions {
	result := gateOptions{
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(&result)
	}
	return result
}

// WithLogger ...
func WithLogger(logger *zap.Logger) Option {
	return func(opts *gateOptions) {
		opts.logger = logger
	}
}

// WithName sets the name attached to every log entry of the gate.
func WithName(name string) Option {
	return func(opts *gateOptions) {
		opts.name = name
	}
}
