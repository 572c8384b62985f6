package master

import "time"

// DefaultSleepInterval is used by polling backends when the handler does
// not ask for another one.
const DefaultSleepInterval = 500 * time.Millisecond

// Handler receives clipboard events from a Master.
//
// All callbacks are invoked from the goroutine executing Run, never
// concurrently.
type Handler interface {
	// OnClipboardChange is called once per detected change. Content is not
	// passed along, the handler reads it on its own.
	OnClipboardChange() Result
	// OnClipboardError is called when the backend fails to observe the
	// clipboard state.
	OnClipboardError(err error) Result
	// SleepInterval is the wait between polls on polling backends. It also
	// bounds how long a shutdown request may take to be noticed there.
	SleepInterval() time.Duration
}

// DefaultHandler provides the default policies. Embed it and implement
// OnClipboardChange:
//
//	type printer struct{ master.DefaultHandler }
//
//	func (printer) OnClipboardChange() master.Result { ... }
type DefaultHandler struct{}

// OnClipboardError stops the watcher and propagates err.
func (DefaultHandler) OnClipboardError(err error) Result { return StopWithError(err) }

// SleepInterval returns DefaultSleepInterval.
func (DefaultHandler) SleepInterval() time.Duration { return DefaultSleepInterval }

// HandlerFuncs adapts plain functions to Handler. Nil fields fall back to
// DefaultHandler behavior, a nil Change always continues.
type HandlerFuncs struct {
	Change   func() Result
	Error    func(err error) Result
	Interval time.Duration
}

func (h HandlerFuncs) OnClipboardChange() Result {
	if h.Change == nil {
		return Continue
	}
	return h.Change()
}

func (h HandlerFuncs) OnClipboardError(err error) Result {
	if h.Error == nil {
		return DefaultHandler{}.OnClipboardError(err)
	}
	return h.Error(err)
}

func (h HandlerFuncs) SleepInterval() time.Duration {
	if h.Interval <= 0 {
		return DefaultSleepInterval
	}
	return h.Interval
}

// sleepInterval returns the handler interval, never a non-positive one.
func sleepInterval(h Handler) time.Duration {
	if d := h.SleepInterval(); d > 0 {
		return d
	}
	return DefaultSleepInterval
}
