package master

const (
	wmClipboardUpdate = 0x031D
	// closeParam is the lParam of the WM_CLIPBOARDUPDATE posted by Shutdown.
	closeParam = ^uintptr(0)
)

type message struct {
	quit   bool
	lParam uintptr
}

// messageSource blocks until the next window message.
type messageSource interface {
	next() (message, error)
}

func runMessages(src messageSource, h Handler, shutdown <-chan struct{}) error {
	for {
		msg, err := src.next()
		if err != nil {
			if stop, err := h.OnClipboardError(err).outcome(); stop {
				return err
			}
			if shutdownRequested(shutdown) {
				return nil
			}
			continue
		}

		if msg.quit || msg.lParam == closeParam {
			return nil
		}
		if stop, err := h.OnClipboardChange().outcome(); stop {
			return err
		}
	}
}
