// Package jack 嵌入式 actor 运行时的进程级门面。
// 宿主程序通常只在引导第一个 actor 时接触这里，此后所有交互
// 都通过行为自己的执行上下文完成。
package jack

import (
	"time"

	"github.com/idokutela/Jack/internal/config"
	"github.com/idokutela/Jack/pkg/actor"
	"github.com/idokutela/Jack/pkg/glog"
	"github.com/idokutela/Jack/pkg/timex/asynctime"
)

func init() {
	InitWithConfig(config.Default())
}

// Init 从 yaml 配置文件初始化默认运行时
func Init(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return InitWithConfig(cfg)
}

// InitWithConfig 按配置构造新的默认 Director：
// 初始化日志与时间轮，注册池调度器为默认调度器
func InitWithConfig(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	glog.Init(&cfg.Glog)
	asynctime.Init(time.Duration(cfg.Runtime.TimerTickMs)*time.Millisecond, cfg.Runtime.TimerWheelSize)

	d := actor.NewDirector()
	if err := d.SetDefaultMailboxCapacity(cfg.Runtime.MailboxCapacity); err != nil {
		return err
	}
	scheduler, err := actor.NewPoolScheduler(cfg.Runtime.PoolSize)
	if err != nil {
		return err
	}
	if err := d.RegisterScheduler(actor.DefaultSchedulerName, scheduler); err != nil {
		return err
	}
	actor.SetDefault(d)
	return nil
}

// Default 当前的默认 Director
func Default() *actor.Director {
	return actor.Default()
}

// CreateActor 在默认 Director 上创建 actor
func CreateActor(behavior actor.IBehavior, opts ...actor.Option) (actor.ActorID, error) {
	return actor.Default().CreateActor(behavior, opts...)
}

// SendMessage 向 actor 尽力投递一条消息
func SendMessage(id actor.ActorID, message interface{}) error {
	return actor.Default().SendMessage(id, message)
}

// Kill 发起目标 actor 的死亡传播
func Kill(id actor.ActorID, reason error) {
	actor.Default().Kill(id, reason)
}

// Shutdown 优雅关闭默认运行时
func Shutdown(timeout time.Duration) error {
	err := actor.Default().Shutdown(timeout)
	glog.Stop()
	return err
}
