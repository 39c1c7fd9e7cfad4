// Package asynctime 进程级共享时间轮，承载运行时所有延迟任务。
// 刻度与轮大小可在首个定时器创建前通过 Init 调整。
package asynctime

import (
	"sync"
	"time"

	"github.com/RussellLuo/timingwheel"
)

const (
	defaultTick      = time.Millisecond
	defaultWheelSize = 1 << 12
)

var (
	mu        sync.Mutex
	wheel     *timingwheel.TimingWheel
	tick      = defaultTick
	wheelSize = int64(defaultWheelSize)
)

// Init 重新配置时间轮。已在运行的轮会被停掉并替换，
// 其上尚未触发的定时器随之失效，因此应在引导阶段调用。
func Init(t time.Duration, size int64) {
	mu.Lock()
	defer mu.Unlock()
	if t > 0 {
		tick = t
	}
	if size > 0 {
		wheelSize = size
	}
	if wheel != nil {
		wheel.Stop()
		wheel = nil
	}
}

// AfterFunc 在 d 之后于时间轮协程上执行 f
func AfterFunc(d time.Duration, f func()) *timingwheel.Timer {
	return running().AfterFunc(d, f)
}

// running 惰性启动当前配置下的时间轮
func running() *timingwheel.TimingWheel {
	mu.Lock()
	defer mu.Unlock()
	if wheel == nil {
		wheel = timingwheel.NewTimingWheel(tick, wheelSize)
		wheel.Start()
	}
	return wheel
}
