package master

import (
	"time"

	"github.com/benbjohnson/clock"
)

// waitShutdown blocks for d or until shutdown is closed, whichever comes
// first, and reports whether shutdown was requested.
func waitShutdown(clk clock.Clock, d time.Duration, shutdown <-chan struct{}) bool {
	t := clk.Timer(d)
	defer t.Stop()

	select {
	case <-shutdown:
		return true
	case <-t.C:
		return shutdownRequested(shutdown)
	}
}

func shutdownRequested(shutdown <-chan struct{}) bool {
	select {
	case <-shutdown:
		return true
	default:
		return false
	}
}
