//go:build (linux && !android) || freebsd || netbsd || openbsd || dragonfly

package master

import (
	"errors"
	"testing"

	"github.com/jezek/xgb/xfixes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClipboardAtom = 42

func relayBackend(events ...xevent) *backend {
	b := &backend{
		clipboard: testClipboardAtom,
		events:    make(chan xevent, len(events)+1),
		quit:      make(chan struct{}),
	}
	for _, e := range events {
		b.events <- e
	}
	return b
}

func acceptAll(uint16) bool { return true }

func TestBackendPollClosedConnection(t *testing.T) {
	b := relayBackend()
	close(b.events)

	_, err := b.poll(acceptAll)
	require.ErrorIs(t, err, errConnClosed)

	_, err = b.arm()
	assert.ErrorIs(t, err, errConnClosed, "no requests on a dead connection")
	assert.NoError(t, b.reset())
	assert.NoError(t, b.close())
}

func TestBackendPollRelaysEvents(t *testing.T) {
	other := xfixes.SelectionNotifyEvent{Selection: testClipboardAtom + 1, Sequence: 7}
	mine := xfixes.SelectionNotifyEvent{Selection: testClipboardAtom, Sequence: 7}

	b := relayBackend(xevent{ev: other}, xevent{ev: mine})
	ok, err := b.poll(acceptAll)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.poll(acceptAll)
	require.NoError(t, err)
	assert.False(t, ok, "queue drained")
}

func TestBackendPollFilteredEvent(t *testing.T) {
	b := relayBackend(xevent{ev: xfixes.SelectionNotifyEvent{Selection: testClipboardAtom, Sequence: 3}})
	f := &seqFilter{since: 10}

	ok, err := b.poll(f.accept)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackendPollProtocolError(t *testing.T) {
	boom := errors.New("BadWindow")
	b := relayBackend(xevent{err: boom})

	_, err := b.poll(acceptAll)
	assert.ErrorIs(t, err, boom)
}
