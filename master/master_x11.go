//go:build (linux && !android) || freebsd || netbsd || openbsd || dragonfly

package master

import (
	"errors"
	"fmt"
	"log"

	"github.com/benbjohnson/clock"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xfixes"
	"github.com/jezek/xgb/xproto"
)

const (
	xfixesMajor = 5
	xfixesMinor = 0

	scratchProperty = "CLIPBOARD_MASTER_PROPERTY"

	selectionEvents = xfixes.SelectionEventMaskSetSelectionOwner |
		xfixes.SelectionEventMaskSelectionClientClose |
		xfixes.SelectionEventMaskSelectionWindowDestroy
)

var errConnClosed = errors.New("master: X connection closed")

type xevent struct {
	ev  xgb.Event
	err error
}

// backend relays X events from a reader goroutine, since PollForEvent
// cannot tell a closed connection from an empty queue.
type backend struct {
	conn   *xgb.Conn
	root   xproto.Window
	window xproto.Window

	clipboard xproto.Atom
	primary   xproto.Atom
	property  xproto.Atom

	clock clock.Clock

	events chan xevent
	quit   chan struct{}
	dead   bool
}

func newBackend(_ *signaler) (_ *backend, err error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("master: connect to X server: %w", err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	if err := xfixes.Init(conn); err != nil {
		return nil, fmt.Errorf("master: XFIXES extension: %w", err)
	}
	ver, err := xfixes.QueryVersion(conn, xfixesMajor, xfixesMinor).Reply()
	if err != nil {
		return nil, fmt.Errorf("master: XFIXES version: %w", err)
	}
	if ver.MajorVersion < xfixesMajor {
		return nil, fmt.Errorf("master: XFIXES %d.%d present, %d.%d required", ver.MajorVersion, ver.MinorVersion, xfixesMajor, xfixesMinor)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	b := &backend{
		conn:   conn,
		root:   screen.Root,
		clock:  clock.New(),
		events: make(chan xevent, 64),
		quit:   make(chan struct{}),
	}

	if b.clipboard, err = internAtom(conn, "CLIPBOARD"); err != nil {
		return nil, err
	}
	if b.primary, err = internAtom(conn, "PRIMARY"); err != nil {
		return nil, err
	}
	if b.property, err = internAtom(conn, scratchProperty); err != nil {
		return nil, err
	}

	if b.window, err = xproto.NewWindowId(conn); err != nil {
		return nil, fmt.Errorf("master: allocate window id: %w", err)
	}
	err = xproto.CreateWindowChecked(conn, 0, b.window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOnly, screen.RootVisual, 0, nil).Check()
	if err != nil {
		return nil, fmt.Errorf("master: create scratch window: %w", err)
	}

	go b.read()

	log.Printf("master: [x11] XFIXES %d.%d, watching CLIPBOARD", ver.MajorVersion, ver.MinorVersion)
	return b, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("master: intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

// read closes events once the connection is gone.
func (b *backend) read() {
	defer close(b.events)
	for {
		ev, xerr := b.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		e := xevent{ev: ev}
		if xerr != nil {
			e.err = xerr
		}
		select {
		case b.events <- e:
		case <-b.quit:
			return
		}
	}
}

func (b *backend) run(h Handler, shutdown <-chan struct{}) error {
	l := &selectionLoop{src: b, clock: b.clock}
	return l.run(h, shutdown)
}

func (b *backend) arm() (uint16, error) {
	if b.dead {
		return 0, errConnClosed
	}
	xfixes.SelectSelectionInput(b.conn, b.root, b.primary, 0)
	xfixes.SelectSelectionInput(b.conn, b.root, b.clipboard, 0)

	cookie := xfixes.SelectSelectionInputChecked(b.conn, b.root, b.clipboard, selectionEvents)
	if err := cookie.Check(); err != nil {
		return 0, fmt.Errorf("master: select CLIPBOARD input: %w", err)
	}
	return cookie.Sequence, nil
}

func (b *backend) poll(accept func(seq uint16) bool) (bool, error) {
	for {
		select {
		case e, ok := <-b.events:
			if !ok {
				b.dead = true
				return false, errConnClosed
			}
			if e.err != nil {
				return false, fmt.Errorf("master: X connection: %w", e.err)
			}
			n, ok := e.ev.(xfixes.SelectionNotifyEvent)
			if ok && n.Selection == b.clipboard && accept(n.Sequence) {
				return true, nil
			}
		default:
			return false, nil
		}
	}
}

func (b *backend) reset() error {
	if b.dead {
		return nil
	}
	if err := xproto.DeletePropertyChecked(b.conn, b.window, b.property).Check(); err != nil {
		return fmt.Errorf("master: delete scratch property: %w", err)
	}
	return nil
}

func (b *backend) close() error {
	close(b.quit)
	if b.dead {
		return nil
	}
	err := xproto.DestroyWindowChecked(b.conn, b.window).Check()
	b.conn.Close()
	if err != nil {
		return fmt.Errorf("master: destroy scratch window: %w", err)
	}
	return nil
}
