package jack

import (
	"testing"
	"time"

	"github.com/idokutela/Jack/internal/config"
	"github.com/idokutela/Jack/pkg/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeBootstrap(t *testing.T) {
	require.NoError(t, InitWithConfig(config.Default()))

	out := make(chan interface{}, 1)
	var echo actor.BehaviorFunc
	echo = func(ctx actor.IContext, message interface{}) (actor.IBehavior, error) {
		out <- message
		return echo, nil
	}

	id, err := CreateActor(echo, actor.WithDescription("facade-echo"))
	require.NoError(t, err)
	require.NoError(t, SendMessage(id, "hello"))

	select {
	case message := <-out:
		assert.Equal(t, "hello", message)
	case <-time.After(3 * time.Second):
		t.Fatal("no echo from facade actor")
	}

	Kill(id, nil)
	assert.False(t, Default().IsAlive(id))
}
