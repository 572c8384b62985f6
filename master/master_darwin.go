//go:build darwin

package master

import (
	"errors"
	"fmt"
	"log"

	"github.com/benbjohnson/clock"
	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

// https://developer.apple.com/documentation/appkit/nspasteboard

const appKitPath = "/System/Library/Frameworks/AppKit.framework/AppKit"

var errNoPasteboard = errors.New("master: unable to open general pasteboard")

var (
	selGeneralPasteboard = objc.RegisterName("generalPasteboard")
	selChangeCount       = objc.RegisterName("changeCount")
	selRetain            = objc.RegisterName("retain")
	selRelease           = objc.RegisterName("release")
)

type backend struct {
	pasteboard objc.ID
	clock      clock.Clock
}

func newBackend(_ *signaler) (*backend, error) {
	if _, err := purego.Dlopen(appKitPath, purego.RTLD_NOW|purego.RTLD_GLOBAL); err != nil {
		return nil, fmt.Errorf("master: load AppKit: %w", err)
	}

	cls := objc.GetClass("NSPasteboard")
	if cls == 0 {
		return nil, errNoPasteboard
	}
	pb := objc.ID(cls).Send(selGeneralPasteboard)
	if pb == 0 {
		return nil, errNoPasteboard
	}
	pb.Send(selRetain)

	log.Printf("master: [darwin] opened general pasteboard")
	return &backend{pasteboard: pb, clock: clock.New()}, nil
}

func (b *backend) changeCount() (int64, error) {
	if b.pasteboard == 0 {
		return 0, errNoPasteboard
	}
	return int64(objc.Send[int](b.pasteboard, selChangeCount)), nil
}

func (b *backend) run(h Handler, shutdown <-chan struct{}) error {
	l := &pollLoop{read: b.changeCount, clock: b.clock}
	return l.run(h, shutdown)
}

func (b *backend) close() error {
	if b.pasteboard != 0 {
		b.pasteboard.Send(selRelease)
		b.pasteboard = 0
	}
	return nil
}
