package master

import "github.com/benbjohnson/clock"

// selectionSource is the X11 side of selectionLoop.
type selectionSource interface {
	// arm (re)registers for selection owner notifications and returns the
	// sequence number of the registration request.
	arm() (seq uint16, err error)
	// poll drains pending events without blocking and reports whether a
	// selection notification passing accept was among them.
	poll(accept func(seq uint16) bool) (bool, error)
	// reset deletes the scratch property.
	reset() error
}

// seqAtLeast compares 16 bit X sequence numbers, which wrap around.
func seqAtLeast(seq, since uint16) bool {
	return int16(seq-since) >= 0
}

// seqFilter discards notifications queued before a registration. The first
// notification at or after since proves the queue is current; from then on
// everything is accepted, so the comparison never spans a wrap-around.
type seqFilter struct {
	since   uint16
	current bool
}

func (f *seqFilter) accept(seq uint16) bool {
	if !f.current {
		f.current = seqAtLeast(seq, f.since)
	}
	return f.current
}

// selectionLoop drives a selectionSource. The registration is kept across
// iterations and renewed only after an observation error.
type selectionLoop struct {
	src   selectionSource
	clock clock.Clock
}

func (l *selectionLoop) run(h Handler, shutdown <-chan struct{}) (err error) {
	defer func() {
		if cerr := l.src.reset(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var filter *seqFilter
	for {
		if filter == nil {
			s, err := l.src.arm()
			if err != nil {
				if stop, err := h.OnClipboardError(err).outcome(); stop {
					return err
				}
				if waitShutdown(l.clock, sleepInterval(h), shutdown) {
					return nil
				}
				continue
			}
			filter = &seqFilter{since: s}
		}

		done, rearm, err := l.watch(h, filter.accept, shutdown)
		if done {
			return err
		}
		if rearm {
			filter = nil
		}

		if err := l.src.reset(); err != nil {
			if stop, err := h.OnClipboardError(err).outcome(); stop {
				return err
			}
		}
		if waitShutdown(l.clock, sleepInterval(h), shutdown) {
			return nil
		}
	}
}

// watch polls until one change or error has been handled. done reports
// whether run must return err, rearm whether the registration is suspect.
func (l *selectionLoop) watch(h Handler, accept func(uint16) bool, shutdown <-chan struct{}) (done, rearm bool, err error) {
	for {
		changed, err := l.src.poll(accept)
		if err != nil {
			stop, err := h.OnClipboardError(err).outcome()
			return stop, true, err
		}
		if changed {
			if shutdownRequested(shutdown) {
				return true, false, nil
			}
			stop, err := h.OnClipboardChange().outcome()
			return stop, false, err
		}
		if waitShutdown(l.clock, sleepInterval(h), shutdown) {
			return true, false, nil
		}
	}
}
