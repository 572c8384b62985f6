package master

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaster(t *testing.T, h Handler) *Master {
	t.Helper()
	m, err := New(h)
	if err != nil {
		t.Skipf("clipboard monitoring unavailable in this environment: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func runAsync(m *Master) <-chan error {
	done := make(chan error, 1)
	go func() { done <- m.Run() }()
	return done
}

func TestNewRejectsNilHandler(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, errNilHandler)
}

func TestMasterShutdown(t *testing.T) {
	const unit = 100 * time.Millisecond

	m := newMaster(t, &recorder{interval: 10 * time.Millisecond})
	shutdown := m.ShutdownChannel()
	go func() {
		time.Sleep(5 * unit)
		shutdown.Signal()
	}()

	start := time.Now()
	require.NoError(t, m.Run())
	assert.InDelta(t, float64(5*unit), float64(time.Since(start)), float64(unit/2))
}

func TestMasterShutdownGuard(t *testing.T) {
	m := newMaster(t, &recorder{})
	done := runAsync(m)

	func() {
		shutdown := m.ShutdownChannel()
		defer shutdown.Close()
		extra := shutdown.Clone()
		defer extra.Close()
	}()

	require.NoError(t, waitRun(t, done))
}

func TestMasterIsNotReentrant(t *testing.T) {
	m := newMaster(t, &recorder{})
	done := runAsync(m)

	require.Eventually(t, m.running.Load, time.Second, time.Millisecond)
	assert.ErrorIs(t, m.Run(), ErrRunning)

	m.ShutdownChannel().Signal()
	require.NoError(t, waitRun(t, done))
}

func TestMasterShutdownIsTerminal(t *testing.T) {
	h := &recorder{}
	m := newMaster(t, h)
	m.ShutdownChannel().Signal()

	require.NoError(t, m.Run())
	require.NoError(t, m.Run())
	assert.Zero(t, h.changes.Load())
}

func TestMasterRunContext(t *testing.T) {
	m := newMaster(t, &recorder{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, m.RunContext(ctx))
}

func TestMasterClose(t *testing.T) {
	m := newMaster(t, &recorder{})
	done := runAsync(m)
	require.Eventually(t, m.running.Load, time.Second, time.Millisecond)

	require.NoError(t, m.Close())
	require.NoError(t, waitRun(t, done))
	assert.ErrorIs(t, m.Run(), ErrClosed)
	assert.NoError(t, m.Close())

	// tokens outlive the master
	m.ShutdownChannel().Signal()
}
