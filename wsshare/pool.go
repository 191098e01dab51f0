// Package wsshare shares websocket connections between independent users.
// At most one connection per URL is open at a time, and it is closed
// when the last user disposes its handle.
package wsshare

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/QuangTung97/dispose/refcount"
)

// Conn is a reference to a shared connection. Every Conn must be disposed with
// Dispose or DisposeContext: the pool only observes connections weakly, so a
// Conn dropped without Dispose leaves its connection open until the process exits.
// Such a drop is logged with a warning once the Conn is garbage collected.
type Conn = refcount.Handle[*websocket.Conn]

// Pool dials at most one connection per URL and shares it between every Acquire caller.
type Pool struct {
	options poolOptions

	mu    sync.Mutex
	conns map[string]*refcount.WeakHandle[*websocket.Conn]
}

// NewPool ...
func NewPool(options ...Option) *Pool {
	return &Pool{
		options: computePoolOptions(options...),
		conns:   map[string]*refcount.WeakHandle[*websocket.Conn]{},
	}
}

func (p *Pool) lookup(url string) (*Conn, bool) {
	w, existed := p.conns[url]
	if !existed {
		return nil, false
	}
	h, ok := w.TryAddReference()
	if !ok {
		delete(p.conns, url)
		return nil, false
	}
	return h, true
}

// Acquire returns a reference to the connection for url, dialing it if no live connection exists.
func (p *Pool) Acquire(ctx context.Context, url string) (*Conn, error) {
	logger := p.options.logger

	p.mu.Lock()
	h, ok := p.lookup(url)
	p.mu.Unlock()
	if ok {
		return h, nil
	}

	conn, _, err := p.options.dialer.DialContext(ctx, url, p.options.header)
	if err != nil {
		logger.Error("Dial server failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	h = refcount.NewContext(conn, p.closeConn(url), refcount.WithLogger(logger))

	p.mu.Lock()
	existing, ok := p.lookup(url)
	if ok {
		p.mu.Unlock()
		_ = h.Dispose()
		return existing, nil
	}

	w, _ := h.AddWeakReference()
	p.conns[url] = w
	p.mu.Unlock()

	logger.Info("Connected to server", zap.String("url", url))
	return h, nil
}

// closeConn writes the close frame before closing, bounded by the close timeout
// and by the deadline of the DisposeContext call that releases the last reference.
func (p *Pool) closeConn(url string) func(ctx context.Context, conn *websocket.Conn) error {
	return func(ctx context.Context, conn *websocket.Conn) error {
		logger := p.options.logger

		p.mu.Lock()
		if w, existed := p.conns[url]; existed {
			if _, ok := w.TryGetTarget(); !ok {
				delete(p.conns, url)
			}
		}
		p.mu.Unlock()

		deadline := time.Now().Add(p.options.closeTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		err := conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		if err != nil {
			logger.Warn("Error while sending close message", zap.String("url", url), zap.Error(err))
		}

		logger.Info("Closing connection", zap.String("url", url))
		return conn.Close()
	}
}

// Len returns the number of URLs with a live connection.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, w := range p.conns {
		if _, ok := w.TryGetTarget(); ok {
			count++
		}
	}
	return count
}
