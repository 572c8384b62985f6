package master

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrUnsupported = errors.New("master: clipboard monitoring is not supported on this platform")
	ErrRunning     = errors.New("master: already running")
	ErrClosed      = errors.New("master: closed")
	errNilHandler  = errors.New("master: nil handler")
)

// Master tracks changes of the clipboard and invokes the corresponding
// Handler callbacks.
//
// Platform notes:
//   - windows creates a message-only window on a dedicated OS thread and
//     receives WM_CLIPBOARDUPDATE for every change.
//   - darwin polls the general pasteboard change counter.
//   - linux and BSDs subscribe to XFIXES CLIPBOARD owner events.
type Master struct {
	handler Handler
	sig     *signaler
	backend *backend

	running atomic.Bool
	mu      sync.Mutex // held by Run
	closed  bool
}

// New acquires the platform resources needed to observe the clipboard.
// Construction failures never reach the handler.
func New(h Handler) (*Master, error) {
	if h == nil {
		return nil, errNilHandler
	}
	sig := newSignaler()
	b, err := newBackend(sig)
	if err != nil {
		return nil, err
	}
	return &Master{handler: h, sig: sig, backend: b}, nil
}

// ShutdownChannel creates a new shutdown token holder.
func (m *Master) ShutdownChannel() *Shutdown {
	return m.sig.token()
}

// Run blocks until the handler stops, an error is escalated by the
// handler or shutdown is requested. Shutdown is terminal: once requested,
// Run returns nil right away.
func (m *Master) Run() error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer m.running.Store(false)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.sig.fired() {
		return nil
	}
	return m.backend.run(m.handler, m.sig.done)
}

// RunContext is Run with shutdown requested once ctx is done.
func (m *Master) RunContext(ctx context.Context) error {
	stop := context.AfterFunc(ctx, m.sig.fire)
	defer stop()
	return m.Run()
}

// Close requests shutdown, waits for a running Run to return and releases
// the platform resources.
func (m *Master) Close() error {
	m.sig.fire()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.backend.close()
}
