package actor

import (
	"github.com/idokutela/Jack/pkg/errs"
)

var _ IMailbox = (*Mailbox)(nil)

// Mailbox 基于带缓冲 channel 的有界 FIFO 队列。
// 多生产者并发入队安全；消费端是单消费者：任一时刻至多一个协程
// 为同一 actor 执行 Poll/Take。
type Mailbox struct {
	ch chan interface{}
}

// NewMailbox 创建容量为 capacity 的邮箱，容量在创建后不可变
func NewMailbox(capacity int) *Mailbox {
	return &Mailbox{
		ch: make(chan interface{}, capacity),
	}
}

// TryOffer 非阻塞入队，队满返回 false
func (m *Mailbox) TryOffer(message interface{}) bool {
	select {
	case m.ch <- message:
		return true
	default:
		return false
	}
}

// Poll 非阻塞出队，队空返回 nil
func (m *Mailbox) Poll() interface{} {
	select {
	case message := <-m.ch:
		return message
	default:
		return nil
	}
}

// Take 阻塞直到有消息可取，或 cancel 触发返回 ErrActorKilled。
// 仅供行为内的阻塞接收原语使用。
func (m *Mailbox) Take(cancel <-chan struct{}) (interface{}, error) {
	select {
	case message := <-m.ch:
		return message, nil
	case <-cancel:
		return nil, errs.ErrActorKilled
	}
}

// Drain 清空队列，让残留消息尽快可回收
func (m *Mailbox) Drain() {
	for {
		select {
		case <-m.ch:
		default:
			return
		}
	}
}

// IsEmpty 检查队列是否为空
func (m *Mailbox) IsEmpty() bool {
	return len(m.ch) == 0
}

// Cap 邮箱容量
func (m *Mailbox) Cap() int {
	return cap(m.ch)
}
