// Package clipboard reads and writes the system clipboard as text.
package clipboard

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.design/x/clipboard"
)

// ErrNotInitialized is returned by ReadText and WriteText before Init succeeded.
var ErrNotInitialized = errors.New("clipboard: not initialized")

var (
	initialized atomic.Bool
	initOnce    sync.Once
	initErr     error
	writeMu     sync.Mutex
)

// Init prepares the platform clipboard. Only the first call does any work.
func Init() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
		initialized.Store(initErr == nil)
	})
	return initErr
}

// ReadText returns the clipboard text. ok is false when the clipboard holds no text.
func ReadText() (text string, ok bool, err error) {
	if !initialized.Load() {
		return "", false, ErrNotInitialized
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

// WriteText replaces the clipboard content with text.
// Writes are serialized to prevent interleaving under parallel callers.
func WriteText(text string) error {
	if !initialized.Load() {
		return ErrNotInitialized
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// Accessor exposes the package functions as a value, for consumers taking an interface.
type Accessor struct{}

func (Accessor) ReadText() (string, bool, error) { return ReadText() }
func (Accessor) WriteText(text string) error     { return WriteText(text) }
