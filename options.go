package dispose

import (
	"go.uber.org/zap"

	"github.com/QuangTung97/dispose/gate"
)

type disposeOptions struct {
	logger *zap.Logger
	policy Policy
}

// Option ...
type Option func(opts *disposeOptions)

func computeDisposeOptions(options ...Option) disposeOptions {
	result := disposeOptions{
		logger: zap.NewNop(),
		policy: Serial,
	}
	for _, o := range options {
		o(&result)
	}
	return result
}

func (o disposeOptions) gateOptions() []gate.Option {
	return []gate.Option{gate.WithLogger(o.logger)}
}

// WithLogger ...
func WithLogger(logger *zap.Logger) Option {
	return func(opts *disposeOptions) {
		opts.logger = logger
	}
}

// WithPolicy selects how the delegates of an Async are executed, default is Serial.
func WithPolicy(policy Policy) Option {
	return func(opts *disposeOptions) {
		opts.policy = policy
	}
}
