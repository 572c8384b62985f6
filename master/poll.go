package master

import "github.com/benbjohnson/clock"

// pollLoop watches a monotonically advancing change counter, the way the
// pasteboard is observed on darwin.
type pollLoop struct {
	read  func() (int64, error)
	clock clock.Clock
}

func (l *pollLoop) run(h Handler, shutdown <-chan struct{}) error {
	var (
		last     int64
		baseline bool
	)
	for {
		count, err := l.read()
		if err != nil {
			if stop, err := h.OnClipboardError(err).outcome(); stop {
				return err
			}
			if waitShutdown(l.clock, sleepInterval(h), shutdown) {
				return nil
			}
			continue
		}

		if !baseline {
			last, baseline = count, true
		}
		if count == last {
			if waitShutdown(l.clock, sleepInterval(h), shutdown) {
				return nil
			}
			continue
		}

		// Recorded before the callback so that a change made by the
		// handler itself, or while it runs, is seen on the next read.
		last = count
		if shutdownRequested(shutdown) {
			return nil
		}
		if stop, err := h.OnClipboardChange().outcome(); stop {
			return err
		}
		if shutdownRequested(shutdown) {
			return nil
		}
	}
}
