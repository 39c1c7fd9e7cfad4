package actor

import (
	"time"

	"github.com/RussellLuo/timingwheel"
	"github.com/idokutela/Jack/pkg/errs"
	"github.com/idokutela/Jack/pkg/timex/asynctime"
)

// Timer 可取消的延迟投递句柄
type Timer struct {
	inner *timingwheel.Timer
}

// Stop 取消尚未触发的定时器，已触发则无效果
func (t *Timer) Stop() {
	t.inner.Stop()
}

// SendAfter 经共享时间轮延迟投递。到期后是一次普通的尽力投递：
// 目标已死则消息被丢弃。
func (d *Director) SendAfter(delay time.Duration, to ActorID, message interface{}) (*Timer, error) {
	if message == nil {
		return nil, errs.ErrMessageIsNil
	}
	inner := asynctime.AfterFunc(delay, func() {
		_ = d.SendMessage(to, message)
	})
	return &Timer{inner: inner}, nil
}
