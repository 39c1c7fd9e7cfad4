package actor

type Option func(*Options)

type Options struct {
	// Description 人类可读描述，仅用于日志
	Description string
	// SchedulerName 调度器名字，空值解析为默认调度器
	SchedulerName string
	// MailboxCapacity 邮箱容量，0 表示使用 Director 的默认容量
	MailboxCapacity int
	// TrapExit 出生即捕获链接死亡
	TrapExit bool
}

func loadOptions(options ...Option) *Options {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}
	return opts
}

func WithDescription(description string) Option {
	return func(op *Options) {
		op.Description = description
	}
}

func WithScheduler(name string) Option {
	return func(op *Options) {
		op.SchedulerName = name
	}
}

func WithMailboxCapacity(capacity int) Option {
	return func(op *Options) {
		op.MailboxCapacity = capacity
	}
}

func WithTrapExit(trap bool) Option {
	return func(op *Options) {
		op.TrapExit = trap
	}
}
