package master

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embedded struct{ DefaultHandler }

func (embedded) OnClipboardChange() Result { return Continue }

func TestDefaultHandler(t *testing.T) {
	var h Handler = embedded{}
	boom := errors.New("boom")

	stop, err := h.OnClipboardError(boom).outcome()
	assert.True(t, stop)
	require.Same(t, boom, err)
	assert.Equal(t, 500*time.Millisecond, h.SleepInterval())
}

func TestHandlerFuncs(t *testing.T) {
	boom := errors.New("boom")

	var empty HandlerFuncs
	assert.Equal(t, Continue, empty.OnClipboardChange())
	assert.Equal(t, StopWithError(boom), empty.OnClipboardError(boom))
	assert.Equal(t, DefaultSleepInterval, empty.SleepInterval())

	called := 0
	h := HandlerFuncs{
		Change:   func() Result { called++; return Stop },
		Error:    continueOnError,
		Interval: time.Second,
	}
	assert.Equal(t, Stop, h.OnClipboardChange())
	assert.Equal(t, 1, called)
	assert.Equal(t, Continue, h.OnClipboardError(boom))
	assert.Equal(t, time.Second, h.SleepInterval())
}

func TestSleepIntervalNeverSpins(t *testing.T) {
	assert.Equal(t, DefaultSleepInterval, sleepInterval(&recorder{interval: -time.Second}))
	assert.Equal(t, 3*time.Millisecond, sleepInterval(&recorder{interval: 3 * time.Millisecond}))
}
