// Package workers 进程级共享协程池，所有运行时内部的异步任务都经由这里提交。
package workers

import (
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

var (
	goCount    atomic.Int64
	panicCount atomic.Uint64
	pool       *ants.Pool
)

func init() {
	pool, _ = ants.NewPool(5000, ants.WithNonblocking(true))
}

// Submit 向共享池提交一个任务，panic 由 recoverFun 兜底
func Submit(fn func(), recoverFun func(err interface{})) {
	err := pool.Submit(func() {
		goCount.Add(1)
		Try(fn, recoverFun)
		goCount.Add(-1)
	})
	if err != nil {
		// 池满或已关闭时退化为裸协程，任务不能丢
		go Try(fn, recoverFun)
	}
}

// Try 执行 fn 并捕获 panic
func Try(fn func(), reFun func(err interface{})) {
	defer func() {
		if err := recover(); err != nil {
			panicCount.Add(1)
			if reFun != nil {
				reFun(err)
			}
		}
	}()
	fn()
}

// Running 当前在途任务数
func Running() int64 {
	return goCount.Load()
}

// Panics 累计捕获的 panic 数
func Panics() uint64 {
	return panicCount.Load()
}
