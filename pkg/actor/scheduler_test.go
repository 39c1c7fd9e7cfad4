package actor

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRejectsDuplicateID(t *testing.T) {
	d := newTestDirector(t)
	scheduler, err := NewPoolScheduler(4)
	require.NoError(t, err)

	a := newActor(d, NewActorID(), idleBehavior(), 16, "")
	require.NoError(t, scheduler.Schedule(a))
	assert.Error(t, scheduler.Schedule(a))
	assert.Error(t, scheduler.Schedule(nil))
}

func TestRelayUnknownActorIsDropped(t *testing.T) {
	scheduler, err := NewPoolScheduler(4)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		scheduler.Relay(ActorID(42), "lost")
		scheduler.Stop(ActorID(42))
	})
}

// 同一 actor 的步进必须串行：并发发送下任一时刻至多一个协程在执行行为
func TestSingleFlightStepping(t *testing.T) {
	d := newTestDirector(t)

	var inFlight, overlapped atomic.Int32
	var processed atomic.Int32
	var b BehaviorFunc
	b = func(ctx IContext, message interface{}) (IBehavior, error) {
		if inFlight.Add(1) > 1 {
			overlapped.Store(1)
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		processed.Add(1)
		return b, nil
	}
	a, err := d.CreateActor(b)
	require.NoError(t, err)

	const senders, perSender = 8, 10
	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				_ = d.SendMessage(a, i)
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return processed.Load() == senders*perSender
	}, waitFor, time.Millisecond)
	assert.Equal(t, int32(0), overlapped.Load())
}

func TestSynchronizedSchedulerRunsInline(t *testing.T) {
	d := NewDirector()
	require.NoError(t, d.RegisterScheduler("sync", NewSynchronizedScheduler()))

	var got []interface{}
	var b BehaviorFunc
	b = func(ctx IContext, message interface{}) (IBehavior, error) {
		got = append(got, message)
		return b, nil
	}
	a, err := d.CreateActor(b, WithScheduler("sync"))
	require.NoError(t, err)

	require.NoError(t, d.SendMessage(a, "one"))
	// 同步调度器在调用方协程上步进，返回即已处理
	assert.Equal(t, []interface{}{"one"}, got)
}

func TestStopDrainsMailbox(t *testing.T) {
	d := newTestDirector(t)
	block := make(chan struct{})
	var calls atomic.Int32
	var b BehaviorFunc
	b = func(ctx IContext, message interface{}) (IBehavior, error) {
		calls.Add(1)
		<-block
		return b, nil
	}
	a, err := d.CreateActor(b, WithMailboxCapacity(16))
	require.NoError(t, err)

	require.NoError(t, d.SendMessage(a, "running"))
	for i := 0; i < 5; i++ {
		require.NoError(t, d.SendMessage(a, i))
	}
	d.Kill(a, nil)
	close(block)

	record := func() bool { return !d.IsAlive(a) }
	require.Eventually(t, record, waitFor, time.Millisecond)

	// 排队的 5 条消息被清空，行为不会再被调用
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), int32(1))
}
