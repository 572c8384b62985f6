package master

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type msgStep struct {
	msg message
	err error
}

type fakeQueue struct {
	steps []msgStep
	reads int
}

func (q *fakeQueue) next() (message, error) {
	q.reads++
	if len(q.steps) == 0 {
		// an exhausted queue behaves as if shutdown was posted
		return message{lParam: closeParam}, nil
	}
	s := q.steps[0]
	q.steps = q.steps[1:]
	return s.msg, s.err
}

var (
	update   = msgStep{}
	sentinel = msgStep{msg: message{lParam: closeParam}}
)

func TestMessagesCloseSentinel(t *testing.T) {
	q := &fakeQueue{steps: []msgStep{update, update, sentinel, update}}
	h := &recorder{}

	require.NoError(t, runMessages(q, h, newSignaler().done))
	assert.Equal(t, int32(2), h.changes.Load())
	assert.Equal(t, 3, q.reads)
}

func TestMessagesStopAfterNth(t *testing.T) {
	q := &fakeQueue{steps: []msgStep{update, update, update, update}}
	h := &recorder{onChange: stopAt(3)}

	require.NoError(t, runMessages(q, h, newSignaler().done))
	assert.Equal(t, int32(3), h.changes.Load())
}

func TestMessagesQuit(t *testing.T) {
	q := &fakeQueue{steps: []msgStep{{msg: message{quit: true}}, update}}
	h := &recorder{}

	require.NoError(t, runMessages(q, h, newSignaler().done))
	assert.Zero(t, h.changes.Load())
}

func TestMessagesErrorPolicy(t *testing.T) {
	invalid := errors.New("invalid window handle")

	t.Run("default escalates", func(t *testing.T) {
		q := &fakeQueue{steps: []msgStep{{err: invalid}, update}}
		h := &recorder{}

		err := runMessages(q, h, newSignaler().done)
		require.Same(t, invalid, err)
		assert.Zero(t, h.changes.Load())
	})

	t.Run("continue resumes", func(t *testing.T) {
		q := &fakeQueue{steps: []msgStep{{err: invalid}, update, sentinel}}
		h := &recorder{onError: continueOnError}

		require.NoError(t, runMessages(q, h, newSignaler().done))
		assert.Equal(t, int32(1), h.changes.Load())
		assert.Equal(t, int32(1), h.errs.Load())
	})

	t.Run("shutdown ends a failing queue", func(t *testing.T) {
		q := &fakeQueue{steps: []msgStep{{err: invalid}, {err: invalid}, {err: invalid}}}
		h := &recorder{onError: continueOnError}
		sig := newSignaler()
		sig.fire()

		require.NoError(t, runMessages(q, h, sig.done))
		assert.Equal(t, 1, q.reads)
	})
}
