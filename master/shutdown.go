package master

import (
	"sync"
	"sync/atomic"
)

// signaler is the state shared by a Master and its Shutdown tokens.
// done is closed on the first request, post wakes event driven backends.
type signaler struct {
	holders atomic.Int64
	once    sync.Once
	done    chan struct{}
	post    func()
}

func newSignaler() *signaler {
	return &signaler{done: make(chan struct{})}
}

func (s *signaler) fire() {
	s.once.Do(func() { close(s.done) })
	if s.post != nil {
		s.post()
	}
}

func (s *signaler) fired() bool {
	return shutdownRequested(s.done)
}

func (s *signaler) token() *Shutdown {
	s.holders.Add(1)
	return &Shutdown{sig: s}
}

// Shutdown requests a Master to stop as soon as possible.
//
// Every token counts as one holder. Signal requests shutdown immediately,
// Close releases the holder and requests shutdown once the last holder is
// released, which makes
//
//	shutdown := m.ShutdownChannel()
//	defer shutdown.Close()
//
// behave as a scope guard. Both are non-blocking, safe to call from any
// goroutine and after the Master has stopped.
type Shutdown struct {
	sig     *signaler
	release sync.Once
}

// Clone returns another holder sharing the same Master.
func (s *Shutdown) Clone() *Shutdown {
	return s.sig.token()
}

// Signal requests shutdown and releases this holder.
func (s *Shutdown) Signal() {
	s.release.Do(func() { s.sig.holders.Add(-1) })
	s.sig.fire()
}

// Close releases this holder. Releasing the last outstanding holder
// requests shutdown. Further calls are no-ops.
func (s *Shutdown) Close() error {
	s.release.Do(func() {
		if s.sig.holders.Add(-1) == 0 {
			s.sig.fire()
		}
	})
	return nil
}

// Requested reports whether shutdown was requested by any holder.
func (s *Shutdown) Requested() bool {
	return s.sig.fired()
}
