package errs

import (
	"errors"
	"fmt"
)

// ========== 运行时终止原因 ==========

var (
	// ErrMailboxBlocked 邮箱已满，目标 actor 将以该原因被杀死
	ErrMailboxBlocked = errors.New("actor mailbox blocked")
	// ErrActorKilled actor 在阻塞接收或长计算中被协作式打断
	ErrActorKilled = errors.New("actor killed")
)

// ========== Director 相关错误 ==========

var (
	// ErrDirectorShuttingDown 运行时正在关闭，拒绝新的 actor 和消息
	ErrDirectorShuttingDown = errors.New("director is shutting down")
	// ErrBehaviorIsNil 行为为空
	ErrBehaviorIsNil = errors.New("behavior is nil")
	// ErrMessageIsNil 消息为空
	ErrMessageIsNil = errors.New("message is nil")
	// ErrSchedulerIsNil 调度器为空
	ErrSchedulerIsNil = errors.New("scheduler is nil")
	// ErrSchedulerNameIsEmpty 调度器名字为空
	ErrSchedulerNameIsEmpty = errors.New("scheduler name is empty")
	// ErrActorIsNil actor 为空
	ErrActorIsNil = errors.New("actor is nil")
)

func ErrMailboxSizeInvalid(size int) error {
	return fmt.Errorf("mailbox size must be positive, got %d", size)
}

func ErrUnknownScheduler(name string) error {
	return fmt.Errorf("unknown scheduler '%s'", name)
}

func ErrSchedulerAlreadyRegistered(name string) error {
	return fmt.Errorf("scheduler '%s' is already registered", name)
}

// ========== 内部不变量错误 ==========
// 这些错误说明调度器或注册表存在 bug。ErrActorAlreadyScheduled 由
// Schedule 作为错误返回，其余以 panic 的形式抛出。

func ErrActorAlreadyScheduled(id uint64) error {
	return fmt.Errorf("id collision: actor %d is already scheduled", id)
}

func ErrWatcherNotAlive(id uint64) error {
	return fmt.Errorf("attempting to watch from a nonexistent actor %d, this is likely an implementation error", id)
}

func ErrBindBothDead(id1, id2 uint64) error {
	return fmt.Errorf("attempting to link two nonexistent actors %d and %d, this almost certainly indicates an unintended race", id1, id2)
}

func ErrNoBehavior(id uint64) error {
	return fmt.Errorf("no behavior for actor %d", id)
}

// ========== Config 相关错误 ==========

func ErrReadConfigFileFailed(err error) error {
	return fmt.Errorf("read config file failed: %w", err)
}

func ErrUnmarshalConfigFailed(err error) error {
	return fmt.Errorf("unmarshal config failed: %w", err)
}
