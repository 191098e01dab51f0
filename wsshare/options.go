package wsshare

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type poolOptions struct {
	dialer       *websocket.Dialer
	header       http.Header
	logger       *zap.Logger
	closeTimeout time.Duration
}

// Option ...
type Option func(opts *poolOptions)

func computePoolOptions(options ...Option) poolOptions {
	opts := poolOptions{
		dialer:       websocket.DefaultDialer,
		logger:       zap.NewNop(),
		closeTimeout: 5 * time.Second,
	}
	for _, o := range options {
		o(&opts)
	}
	return opts
}

// WithDialer ...
func WithDialer(dialer *websocket.Dialer) Option {
	return func(opts *poolOptions) {
		opts.dialer = dialer
	}
}

// WithHeader sets the request header used when dialing.
func WithHeader(header http.Header) Option {
	return func(opts *poolOptions) {
		opts.header = header
	}
}

// WithLogger ...
func WithLogger(logger *zap.Logger) Option {
	return func(opts *poolOptions) {
		opts.logger = logger
	}
}

// WithCloseTimeout bounds how long writing the close frame may take when the last reference is released.
func WithCloseTimeout(d time.Duration) Option {
	return func(opts *poolOptions) {
		opts.closeTimeout = d
	}
}
