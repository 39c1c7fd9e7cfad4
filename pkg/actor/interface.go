// Package actor 提供嵌入式 actor 运行时：存活 actor 目录、行为/邮箱/执行三元组、
// 链接与监视构成的监督图，以及把 actor 驱动到工作协程上的调度器契约。
package actor

import "time"

type (
	// IBehavior 行为：消费一条消息并返回处理下一条消息的行为。
	// 返回 (nil, nil) 表示干净退出；返回错误则以该错误为死亡原因终止。
	IBehavior interface {
		Receive(ctx IContext, message interface{}) (IBehavior, error)
	}

	// IScheduler 调度器契约。Schedule 在 actor 创建时被调用且仅调用一次；
	// Relay 入队消息并保证此后至少步进一次；Stop 在 actor 被移出注册表后
	// 停止后续步进并打断在途工作。
	IScheduler interface {
		Schedule(a *Actor) error
		Relay(id ActorID, message interface{})
		Stop(id ActorID)
	}

	// IMailbox 单 actor 的有界 FIFO 消息队列
	IMailbox interface {
		TryOffer(message interface{}) bool
		Poll() interface{}
		Take(cancel <-chan struct{}) (interface{}, error)
		Drain()
		IsEmpty() bool
		Cap() int
	}

	// IContext 行为与运行时对话的唯一接口，所有操作只接受和返回 id，
	// 不暴露存活 actor 的引用。
	IContext interface {
		// Self 自己的 id
		Self() ActorID
		// TrapExit 更新自己的 trap-exit 标志
		TrapExit(trap bool)
		// Send 尽力投递，目标不存在时静默丢弃
		Send(to ActorID, message interface{}) error
		// SendAfter 延迟投递，返回可取消的定时器
		SendAfter(delay time.Duration, to ActorID, message interface{}) (*Timer, error)
		// Create 创建新 actor，返回时已注册可调度，但可能已经死亡
		Create(behavior IBehavior, opts ...Option) (ActorID, error)
		// Kill 发起目标的死亡传播
		Kill(id ActorID, reason error)
		// Watch 监视目标死亡
		Watch(id ActorID) WatchID
		// Unwatch 幂等移除监视
		Unwatch(id ActorID, watchID WatchID)
		// Bind 等价于 BindPair(Self(), id)
		Bind(id ActorID)
		BindPair(id1, id2 ActorID)
		// Unbind 等价于 UnbindPair(Self(), id)
		Unbind(id ActorID)
		UnbindPair(id1, id2 ActorID)
		// Receive 阻塞取走自己邮箱里的下一条消息。
		// 会钉住工作协程，应节制使用；阻塞期间被杀死返回 ErrActorKilled。
		Receive() (interface{}, error)
		// ShouldDie 长计算据此自愿中止
		ShouldDie() bool

		RegisterAlias(alias string, id ActorID) bool
		ReplaceAlias(alias string, oldID, newID ActorID) bool
		DeregisterAlias(alias string)
		LookupAlias(alias string) ActorID
	}

	// BehaviorFunc 把函数适配为 IBehavior
	BehaviorFunc func(ctx IContext, message interface{}) (IBehavior, error)
)

func (f BehaviorFunc) Receive(ctx IContext, message interface{}) (IBehavior, error) {
	return f(ctx, message)
}
