package actor

import "math/rand/v2"

// ActorID 唯一标识一个 actor，0 为保留的"不存在"值，永远不会分配给真实 actor。
type ActorID uint64

// WatchID 唯一标识一次监视，与 ActorID 同构。
type WatchID uint64

const (
	// Nonexistent 别名查询未命中时返回的保留值
	Nonexistent ActorID = 0

	// DefaultSchedulerName 默认调度器的固定名字
	DefaultSchedulerName = "jack_director_default_scheduler"

	// DefaultMailboxCapacity 邮箱默认容量
	DefaultMailboxCapacity = 10000000
)

// NewActorID 随机生成一个非零 actor id。
// 与存活 id 的碰撞由注册表在插入时检测并由调用方重试。
func NewActorID() ActorID {
	for {
		if id := rand.Uint64(); id != 0 {
			return ActorID(id)
		}
	}
}

// NewWatchID 随机生成一个非零 watch id
func NewWatchID() WatchID {
	for {
		if id := rand.Uint64(); id != 0 {
			return WatchID(id)
		}
	}
}
