package master

import (
	"sync/atomic"
	"time"
)

// recorder is a Handler counting its invocations.
type recorder struct {
	changes  atomic.Int32
	errs     atomic.Int32
	interval time.Duration
	onChange func(n int) Result
	onError  func(err error) Result
}

func (r *recorder) OnClipboardChange() Result {
	n := int(r.changes.Add(1))
	if r.onChange == nil {
		return Continue
	}
	return r.onChange(n)
}

func (r *recorder) OnClipboardError(err error) Result {
	r.errs.Add(1)
	if r.onError == nil {
		return DefaultHandler{}.OnClipboardError(err)
	}
	return r.onError(err)
}

func (r *recorder) SleepInterval() time.Duration {
	if r.interval == 0 {
		return time.Millisecond
	}
	return r.interval
}

func continueOnError(error) Result { return Continue }

func stopAt(n int) func(int) Result {
	return func(i int) Result {
		if i == n {
			return Stop
		}
		return Continue
	}
}
