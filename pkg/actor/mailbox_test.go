package actor

import (
	"testing"
	"time"

	"github.com/idokutela/Jack/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxFIFO(t *testing.T) {
	mb := NewMailbox(8)
	for i := 0; i < 5; i++ {
		require.True(t, mb.TryOffer(i))
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, mb.Poll())
	}
	assert.Nil(t, mb.Poll())
	assert.True(t, mb.IsEmpty())
}

func TestMailboxBounded(t *testing.T) {
	mb := NewMailbox(2)
	assert.Equal(t, 2, mb.Cap())
	require.True(t, mb.TryOffer("a"))
	require.True(t, mb.TryOffer("b"))
	assert.False(t, mb.TryOffer("c"))

	assert.Equal(t, "a", mb.Poll())
	assert.True(t, mb.TryOffer("c"))
}

func TestMailboxDrain(t *testing.T) {
	mb := NewMailbox(4)
	mb.TryOffer(1)
	mb.TryOffer(2)
	mb.Drain()
	assert.True(t, mb.IsEmpty())
}

func TestMailboxTake(t *testing.T) {
	mb := NewMailbox(1)
	cancel := make(chan struct{})

	go func() {
		time.Sleep(10 * time.Millisecond)
		mb.TryOffer("late")
	}()
	message, err := mb.Take(cancel)
	require.NoError(t, err)
	assert.Equal(t, "late", message)
}

func TestMailboxTakeCancelled(t *testing.T) {
	mb := NewMailbox(1)
	cancel := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := mb.Take(cancel)
		done <- err
	}()

	close(cancel)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, errs.ErrActorKilled)
	case <-time.After(time.Second):
		t.Fatal("take did not unblock on cancel")
	}
}
