package actor

import (
	"sync"
	"sync/atomic"

	"github.com/idokutela/Jack/pkg/errs"
	"github.com/idokutela/Jack/pkg/glog"
	"github.com/idokutela/Jack/pkg/workers"
	"github.com/pkg/errors"
)

const (
	stepIdle int32 = iota
	stepRunning
)

// Actor 单元：持有当前行为、邮箱与死亡标志，定义单消息步进。
// behavior 字段只被步进协程读写；stepState 的 CAS 保证任一时刻
// 至多一个协程为该 actor 执行步进。
type Actor struct {
	id          ActorID
	description string
	director    *Director
	mailbox     *Mailbox

	behavior IBehavior
	ctx      *actorContext

	shouldDie atomic.Bool
	dying     chan struct{}
	dieOnce   sync.Once
	stepState atomic.Int32
}

func newActor(d *Director, id ActorID, behavior IBehavior, capacity int, description string) *Actor {
	a := &Actor{
		id:          id,
		description: description,
		director:    d,
		mailbox:     NewMailbox(capacity),
		behavior:    behavior,
		dying:       make(chan struct{}),
	}
	a.ctx = newActorContext(a)
	return a
}

// ID 返回 actor 的 id
func (a *Actor) ID() ActorID {
	return a.id
}

// Description 人类可读的描述，运行时不解释其内容
func (a *Actor) Description() string {
	return a.description
}

// Deliver 尝试把消息放进邮箱。
// 队满不是静默失败：触发一次以 ErrMailboxBlocked 为原因的异步自杀。
// 异步是必须的——投递可能发生在注册表锁内，同步杀死会在该锁上自死锁。
func (a *Actor) Deliver(message interface{}) bool {
	if a.shouldDie.Load() {
		// 已进入死亡流程，输掉竞争的在途投递静默丢弃
		return false
	}
	if !a.mailbox.TryOffer(message) {
		workers.Submit(func() {
			a.director.Kill(a.id, errs.ErrMailboxBlocked)
		}, func(err interface{}) {
			glog.Errorf("mailbox blocked kill panic: %v", err)
		})
		return false
	}
	return true
}

// Kill 设置单调的死亡标志并唤醒阻塞中的 Receive。
// 由调度器的 Stop 调用；幂等。
func (a *Actor) Kill() {
	a.shouldDie.Store(true)
	a.dieOnce.Do(func() {
		close(a.dying)
	})
}

// ShouldDie 死亡标志，长计算应周期性轮询
func (a *Actor) ShouldDie() bool {
	return a.shouldDie.Load()
}

// HasWork 邮箱里还有待处理的消息
func (a *Actor) HasWork() bool {
	return !a.mailbox.IsEmpty()
}

// beginStep 尝试占有步进权，失败说明已有步进在途
func (a *Actor) beginStep() bool {
	return a.stepState.CompareAndSwap(stepIdle, stepRunning)
}

func (a *Actor) endStep() {
	a.stepState.Store(stepIdle)
}

// RunOnce 执行一次步进：至多消费一条消息。
// 调用方必须已通过 beginStep 占有步进权。
func (a *Actor) RunOnce() {
	if a.shouldDie.Load() {
		// 清空邮箱：让排队的引用可回收，也避免残留的唤醒调度空转
		a.mailbox.Drain()
		return
	}

	behavior := a.behavior
	if behavior == nil {
		// 不应该发生，出现说明调度器有 bug
		panic(errs.ErrNoBehavior(uint64(a.id)))
	}

	message := a.mailbox.Poll()
	if message == nil {
		// 虚假唤醒
		return
	}

	next, err := a.invoke(behavior, message)
	if err != nil {
		a.director.Kill(a.id, err)
		return
	}
	if next == nil {
		// 干净退出
		a.director.Kill(a.id, nil)
		return
	}
	a.behavior = next
}

// invoke 调用行为并把 panic 转化为带堆栈的死亡原因
func (a *Actor) invoke(behavior IBehavior, message interface{}) (next IBehavior, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = nil
			err = errors.Errorf("behavior panic: %v", r)
		}
	}()
	return behavior.Receive(a.ctx, message)
}
