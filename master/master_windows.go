//go:build windows

package master

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/lxn/win"
	"go.uber.org/multierr"
	"golang.org/x/sys/windows"
)

var (
	user32                            = windows.NewLazySystemDLL("user32.dll")
	procAddClipboardFormatListener    = user32.NewProc("AddClipboardFormatListener")
	procRemoveClipboardFormatListener = user32.NewProc("RemoveClipboardFormatListener")
)

// backend owns a message-only window. Window messages are delivered to the
// thread that created the window, so creation, the message pump and
// destruction all happen on one locked OS thread which executes calls.
type backend struct {
	hwnd   win.HWND
	calls  chan func()
	exited chan error
	closed atomic.Bool
}

type pumpOutcome struct {
	err      error
	panicked any
}

func newBackend(sig *signaler) (*backend, error) {
	b := &backend{
		calls:  make(chan func()),
		exited: make(chan error, 1),
	}
	ready := make(chan error, 1)
	go b.thread(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	sig.post = b.post

	log.Printf("master: [windows] message window %#x created", uintptr(b.hwnd))
	return b, nil
}

func (b *backend) thread(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd, err := createMessageWindow()
	if err != nil {
		ready <- err
		return
	}
	b.hwnd = hwnd
	ready <- nil

	for fn := range b.calls {
		fn()
	}

	var derr error
	if !win.DestroyWindow(hwnd) {
		derr = lastError("DestroyWindow")
	}
	b.exited <- derr
}

func createMessageWindow() (win.HWND, error) {
	class, err := syscall.UTF16PtrFromString("STATIC")
	if err != nil {
		return 0, err
	}
	hwnd := win.CreateWindowEx(0, class, nil, 0, 0, 0, 0, 0, win.HWND_MESSAGE, 0, win.GetModuleHandle(nil), nil)
	if hwnd == 0 {
		return 0, lastError("create message window")
	}
	return hwnd, nil
}

func (b *backend) run(h Handler, shutdown <-chan struct{}) error {
	done := make(chan pumpOutcome, 1)
	b.calls <- func() {
		defer func() {
			if p := recover(); p != nil {
				done <- pumpOutcome{panicked: p}
			}
		}()
		done <- pumpOutcome{err: b.pump(h, shutdown)}
	}

	o := <-done
	if o.panicked != nil {
		panic(o.panicked)
	}
	return o.err
}

// pump runs on the window thread.
func (b *backend) pump(h Handler, shutdown <-chan struct{}) (err error) {
	if r, _, e := procAddClipboardFormatListener.Call(uintptr(b.hwnd)); r == 0 {
		return fmt.Errorf("master: AddClipboardFormatListener: %w", e)
	}
	defer func() {
		if r, _, e := procRemoveClipboardFormatListener.Call(uintptr(b.hwnd)); r == 0 {
			err = multierr.Append(err, fmt.Errorf("master: RemoveClipboardFormatListener: %w", e))
		}
	}()

	return runMessages(windowQueue{hwnd: b.hwnd}, h, shutdown)
}

// post wakes the pump with the close sentinel. Posting to a destroyed
// window fails without effect.
func (b *backend) post() {
	if b.closed.Load() {
		return
	}
	win.PostMessage(b.hwnd, wmClipboardUpdate, 0, closeParam)
}

func (b *backend) close() error {
	b.closed.Store(true)
	close(b.calls)
	return <-b.exited
}

type windowQueue struct {
	hwnd win.HWND
}

func (q windowQueue) next() (message, error) {
	var msg win.MSG
	switch win.GetMessage(&msg, q.hwnd, wmClipboardUpdate, wmClipboardUpdate) {
	case -1:
		return message{}, lastError("GetMessage")
	case 0:
		return message{quit: true}, nil
	}
	return message{lParam: msg.LParam}, nil
}

func lastError(op string) error {
	err := windows.GetLastError()
	if err == nil {
		err = errors.New("unknown error")
	}
	return fmt.Errorf("master: %s: %w", op, err)
}
