package actor

import (
	"time"

	"github.com/duke-git/lancet/v2/maputil"
	"github.com/idokutela/Jack/pkg/errs"
	"github.com/idokutela/Jack/pkg/glog"
	"github.com/idokutela/Jack/pkg/workers"
	"github.com/panjf2000/ants/v2"
)

var _ IScheduler = (*PoolScheduler)(nil)

// PoolScheduler 把外部提供的 ants 协程池当作不透明的工作提交器：
// 每次 Relay 投递消息后向池提交一次步进任务。池的并发能力加上
// actor 内部的步进权 CAS，共同保证单 actor 串行执行。
type PoolScheduler struct {
	pool   *ants.Pool
	actors *maputil.ConcurrentMap[uint64, *Actor]
}

// NewPoolScheduler 创建自带 size 大小协程池的调度器。
// 池是非阻塞的：投递可能发生在注册表锁内，绝不能在提交上阻塞。
func NewPoolScheduler(size int) (*PoolScheduler, error) {
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return NewPoolSchedulerWithPool(pool), nil
}

// NewPoolSchedulerWithPool 包装宿主程序已有的协程池
func NewPoolSchedulerWithPool(pool *ants.Pool) *PoolScheduler {
	return &PoolScheduler{
		pool:   pool,
		actors: maputil.NewConcurrentMap[uint64, *Actor](32),
	}
}

// Schedule 注册 actor，每个 actor 恰好调用一次，重复 id 报错
func (s *PoolScheduler) Schedule(a *Actor) error {
	if a == nil {
		return errs.ErrActorIsNil
	}
	if _, exists := s.actors.Get(uint64(a.ID())); exists {
		return errs.ErrActorAlreadyScheduled(uint64(a.ID()))
	}
	s.actors.Set(uint64(a.ID()), a)
	return nil
}

// Relay 投递消息并保证目标此后至少步进一次，目标未知时静默丢弃
func (s *PoolScheduler) Relay(id ActorID, message interface{}) {
	a, ok := s.actors.Get(uint64(id))
	if !ok {
		return
	}
	a.Deliver(message)
	s.dispatch(a)
}

// Stop 该 actor 已被移出注册表：标记死亡、打断阻塞接收，
// 并提交最后一次步进以清空残留消息
func (s *PoolScheduler) Stop(id ActorID) {
	a, ok := s.actors.Get(uint64(id))
	if !ok {
		return
	}
	s.actors.Delete(uint64(id))
	a.Kill()
	s.dispatch(a)
}

// Release 关闭内部协程池，等待在途步进结束
func (s *PoolScheduler) Release(timeout time.Duration) error {
	return s.pool.ReleaseTimeout(timeout)
}

func (s *PoolScheduler) dispatch(a *Actor) {
	if err := s.pool.Submit(func() { s.step(a) }); err != nil {
		// 池已释放时退化到进程级共享池，清扫步进不能丢
		workers.Submit(func() { s.step(a) }, s.recoverStep)
	}
}

// step 一次步进任务。占有步进权失败说明已有在途步进，直接返回：
// 邮箱非空时在途步进结束后会重新派发。
func (s *PoolScheduler) step(a *Actor) {
	if !a.beginStep() {
		return
	}
	defer func() {
		a.endStep()
		if a.HasWork() {
			s.dispatch(a)
		}
	}()
	workers.Try(a.RunOnce, s.recoverStep)
}

func (s *PoolScheduler) recoverStep(err interface{}) {
	glog.Errorf("actor step panic: %v", err)
}

var _ IScheduler = (*SynchronizedScheduler)(nil)

// SynchronizedScheduler 在调用方协程上同步执行步进，用于确定性测试。
// 行为里的阻塞接收会挂起发送方，不要在生产代码里使用。
type SynchronizedScheduler struct {
	actors *maputil.ConcurrentMap[uint64, *Actor]
}

func NewSynchronizedScheduler() *SynchronizedScheduler {
	return &SynchronizedScheduler{
		actors: maputil.NewConcurrentMap[uint64, *Actor](8),
	}
}

func (s *SynchronizedScheduler) Schedule(a *Actor) error {
	if a == nil {
		return errs.ErrActorIsNil
	}
	if _, exists := s.actors.Get(uint64(a.ID())); exists {
		return errs.ErrActorAlreadyScheduled(uint64(a.ID()))
	}
	s.actors.Set(uint64(a.ID()), a)
	return nil
}

func (s *SynchronizedScheduler) Relay(id ActorID, message interface{}) {
	a, ok := s.actors.Get(uint64(id))
	if !ok {
		return
	}
	a.Deliver(message)
	s.drive(a)
}

func (s *SynchronizedScheduler) Stop(id ActorID) {
	a, ok := s.actors.Get(uint64(id))
	if !ok {
		return
	}
	s.actors.Delete(uint64(id))
	a.Kill()
	s.drive(a)
}

func (s *SynchronizedScheduler) drive(a *Actor) {
	for {
		if !a.beginStep() {
			return
		}
		workers.Try(a.RunOnce, func(err interface{}) {
			glog.Errorf("actor step panic: %v", err)
		})
		a.endStep()
		if !a.HasWork() {
			return
		}
	}
}
