package actor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/duke-git/lancet/v2/maputil"
	"github.com/idokutela/Jack/pkg/errs"
	"github.com/idokutela/Jack/pkg/glog"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// actorRecord 注册表里每个存活 actor 一条。
// linkages 与 watches 只在注册表锁内变更；trapsExit 是原子量，
// 切换对下一次链接传播决策立即可见。
type actorRecord struct {
	scheduler IScheduler
	trapsExit atomic.Bool
	linkages  map[ActorID]struct{}
	watches   map[WatchID]ActorID
}

func newActorRecord(scheduler IScheduler) *actorRecord {
	return &actorRecord{
		scheduler: scheduler,
		linkages:  make(map[ActorID]struct{}),
		watches:   make(map[WatchID]ActorID),
	}
}

// Director 组合注册表、别名目录与调度器集合，是运行时的权威入口。
// id 在注册表里 ⇔ actor 存活；移出注册表是死亡的线性化点。
//
// 锁规约：kill/watch/bind/unbind 的临界区共用一把注册表级互斥锁，
// 先行的字典查找走并发 map。链接操作触及两条记录，继承全局序，
// 不做两锁细粒度协议（有意的粗粒度设计）。
type Director struct {
	schedMu     sync.RWMutex
	schedulers  map[string]IScheduler
	defaultName string

	actors  *maputil.ConcurrentMap[uint64, *actorRecord]
	aliases *aliasTable

	mu           sync.Mutex
	shuttingDown atomic.Bool

	defaultMailboxCapacity int
}

func NewDirector() *Director {
	return &Director{
		schedulers:             make(map[string]IScheduler),
		defaultName:            DefaultSchedulerName,
		actors:                 maputil.NewConcurrentMap[uint64, *actorRecord](32),
		aliases:                newAliasTable(),
		defaultMailboxCapacity: DefaultMailboxCapacity,
	}
}

var (
	defaultValue atomic.Pointer[Director]
	defaultOnce  sync.Once
)

// Default 进程级默认 Director。未经 SetDefault 设置时惰性构造一个
// 未注册任何调度器的空实例。
func Default() *Director {
	if d := defaultValue.Load(); d != nil {
		return d
	}
	defaultOnce.Do(func() {
		defaultValue.CompareAndSwap(nil, NewDirector())
	})
	return defaultValue.Load()
}

// SetDefault 替换进程级默认 Director
func SetDefault(d *Director) {
	if d == nil {
		return
	}
	defaultValue.Store(d)
}

// SetDefaultMailboxCapacity 设置建 actor 时未显式指定的邮箱容量
func (d *Director) SetDefaultMailboxCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.ErrMailboxSizeInvalid(capacity)
	}
	d.defaultMailboxCapacity = capacity
	return nil
}

// RegisterScheduler 注册调度器。重复注册同名调度器是编程错误。
// 调度器一经注册不可注销。
func (d *Director) RegisterScheduler(name string, scheduler IScheduler) error {
	if scheduler == nil {
		return errs.ErrSchedulerIsNil
	}
	if name == "" {
		return errs.ErrSchedulerNameIsEmpty
	}
	d.schedMu.Lock()
	defer d.schedMu.Unlock()
	if _, exists := d.schedulers[name]; exists {
		return errs.ErrSchedulerAlreadyRegistered(name)
	}
	d.schedulers[name] = scheduler
	return nil
}

// SetDefaultScheduler 显式指定默认调度器
func (d *Director) SetDefaultScheduler(name string) error {
	d.schedMu.Lock()
	defer d.schedMu.Unlock()
	if _, exists := d.schedulers[name]; !exists {
		return errs.ErrUnknownScheduler(name)
	}
	d.defaultName = name
	return nil
}

// resolveScheduler 解析优先级：显式名字 > 已设置的默认 > 唯一注册者
func (d *Director) resolveScheduler(name string) (IScheduler, error) {
	d.schedMu.RLock()
	defer d.schedMu.RUnlock()
	if name == "" || name == DefaultSchedulerName {
		if s, ok := d.schedulers[d.defaultName]; ok {
			return s, nil
		}
		if len(d.schedulers) == 1 {
			for _, s := range d.schedulers {
				return s, nil
			}
		}
		return nil, errs.ErrUnknownScheduler(DefaultSchedulerName)
	}
	if s, ok := d.schedulers[name]; ok {
		return s, nil
	}
	return nil, errs.ErrUnknownScheduler(name)
}

// CreateActor 创建 actor：构造单元与记录，插入注册表后交给调度器。
// 返回时 actor 已可调度，但可能已经死亡。
func (d *Director) CreateActor(behavior IBehavior, opts ...Option) (ActorID, error) {
	if d.shuttingDown.Load() {
		return Nonexistent, errs.ErrDirectorShuttingDown
	}
	if behavior == nil {
		return Nonexistent, errs.ErrBehaviorIsNil
	}
	o := loadOptions(opts...)
	capacity := o.MailboxCapacity
	if capacity == 0 {
		capacity = d.defaultMailboxCapacity
	}
	if capacity < 0 {
		return Nonexistent, errs.ErrMailboxSizeInvalid(capacity)
	}
	scheduler, err := d.resolveScheduler(o.SchedulerName)
	if err != nil {
		return Nonexistent, err
	}

	for {
		a := newActor(d, NewActorID(), behavior, capacity, o.Description)
		record := newActorRecord(scheduler)
		record.trapsExit.Store(o.TrapExit)

		d.mu.Lock()
		if _, collision := d.actors.Get(uint64(a.ID())); collision {
			// 天文数字级的小概率：id 撞上存活 actor，重试
			d.mu.Unlock()
			continue
		}
		d.actors.Set(uint64(a.ID()), record)
		d.mu.Unlock()

		if err := scheduler.Schedule(a); err != nil {
			d.actors.Delete(uint64(a.ID()))
			return Nonexistent, err
		}
		glog.Debug("actor created", zap.Uint64("id", uint64(a.ID())), zap.String("description", o.Description))
		return a.ID(), nil
	}
}

// SendMessage 尽力投递：目标未知时静默丢弃并正常返回
func (d *Director) SendMessage(id ActorID, message interface{}) error {
	if message == nil {
		return errs.ErrMessageIsNil
	}
	if d.shuttingDown.Load() {
		return errs.ErrDirectorShuttingDown
	}
	record, ok := d.actors.Get(uint64(id))
	if !ok {
		return nil
	}
	record.scheduler.Relay(id, message)
	return nil
}

// Kill 发起死亡传播。对不存在的 id 幂等；绝不向调用方抛错。
func (d *Director) Kill(id ActorID, reason error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.killLocked(id, reason)
}

// killLocked 死亡传播的核心，必须持注册表锁调用。
// 先把记录移出注册表再遍历它的对端集合：监督图可以成环，
// 第二次访问发现记录已不存在即终止，不会重复通知。
// 递归在同一把锁内展开，不重入加锁。
func (d *Director) killLocked(id ActorID, reason error) {
	record, ok := d.actors.Get(uint64(id))
	if !ok {
		return
	}
	d.actors.Delete(uint64(id))

	// 先停执行，避免 kill 原因之间的竞争
	record.scheduler.Stop(id)

	for watchID, watcher := range record.watches {
		d.notifyLocked(watcher, WatchFired{WatchID: watchID, Reason: reason})
	}
	for peer := range record.linkages {
		peerRecord, alive := d.actors.Get(uint64(peer))
		if !alive {
			continue
		}
		// 链接随任一端死亡而解除
		delete(peerRecord.linkages, id)
		if peerRecord.trapsExit.Load() {
			d.notifyLocked(peer, LinkFired{Peer: id, Reason: reason})
		} else {
			d.killLocked(peer, LinkFired{Peer: id, Reason: reason})
		}
	}
	glog.Debug("actor killed", zap.Uint64("id", uint64(id)), zap.Any("reason", reason))
}

// notifyLocked 终止通知尽力投递，接收方可能也已经死了
func (d *Director) notifyLocked(to ActorID, message interface{}) {
	record, ok := d.actors.Get(uint64(to))
	if !ok {
		return
	}
	record.scheduler.Relay(to, message)
}

// SetExitTrapping 更新 trap-exit 标志。
// 与传播中的 kill 并发切换是有意允许的竞争：以传播时读到的值为准。
func (d *Director) SetExitTrapping(id ActorID, trap bool) {
	record, ok := d.actors.Get(uint64(id))
	if !ok {
		return
	}
	record.trapsExit.Store(trap)
}

// AddWatch 监视 target。目标不存在时监视者立即收到 Reason 为 nil 的
// WatchFired。同一对 (watcher, target) 可以持有任意多个不同的 watch。
func (d *Director) AddWatch(watcher, target ActorID) WatchID {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, alive := d.actors.Get(uint64(watcher)); !alive {
		// 不应该发生：说明调度器让死 actor 继续步进了
		panic(errs.ErrWatcherNotAlive(uint64(watcher)))
	}

	watchID := NewWatchID()
	record, alive := d.actors.Get(uint64(target))
	if !alive {
		d.notifyLocked(watcher, WatchFired{WatchID: watchID})
		return watchID
	}
	for {
		if _, dup := record.watches[watchID]; !dup {
			break
		}
		watchID = NewWatchID()
	}
	record.watches[watchID] = watcher
	return watchID
}

// RemoveWatch 幂等移除，不产生通知
func (d *Director) RemoveWatch(target ActorID, watchID WatchID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	record, ok := d.actors.Get(uint64(target))
	if !ok {
		return
	}
	delete(record.watches, watchID)
}

// Bind 建立对称链接。链接是幂等且一价的：任意无序对之间至多一条。
// 与并发死亡之间存在已知竞争，部分通知是可能的；建议在首条消息
// 投递前完成绑定。
func (d *Director) Bind(id1, id2 ActorID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r1, ok1 := d.actors.Get(uint64(id1))
	r2, ok2 := d.actors.Get(uint64(id2))

	if !ok1 && !ok2 {
		// 只有竞争才会到这里
		panic(errs.ErrBindBothDead(uint64(id1), uint64(id2)))
	}
	if !ok1 {
		d.linkPeerDiedLocked(id2, id1)
		return
	}
	if !ok2 {
		d.linkPeerDiedLocked(id1, id2)
		return
	}

	// 每端存对端的 id
	r1.linkages[id2] = struct{}{}
	r2.linkages[id1] = struct{}{}
}

// linkPeerDiedLocked 绑定时对端已死：等同一次链接死亡事件，
// trap-exit 决定收消息还是被级联杀死
func (d *Director) linkPeerDiedLocked(survivor, dead ActorID) {
	record, alive := d.actors.Get(uint64(survivor))
	if !alive {
		return
	}
	if record.trapsExit.Load() {
		d.notifyLocked(survivor, LinkFired{Peer: dead})
	} else {
		d.killLocked(survivor, LinkFired{Peer: dead})
	}
}

// Unbind 尽力对称移除，不产生通知
func (d *Director) Unbind(id1, id2 ActorID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r1, ok := d.actors.Get(uint64(id1)); ok {
		delete(r1.linkages, id2)
	}
	if r2, ok := d.actors.Get(uint64(id2)); ok {
		delete(r2.linkages, id1)
	}
}

// RegisterAlias put-if-absent，别名未绑定时成功
func (d *Director) RegisterAlias(alias string, id ActorID) bool {
	return d.aliases.register(alias, id)
}

// ReplaceAlias compare-and-set，当前绑定等于 oldID 时成功
func (d *Director) ReplaceAlias(alias string, oldID, newID ActorID) bool {
	return d.aliases.replace(alias, oldID, newID)
}

// DeregisterAlias 幂等删除
func (d *Director) DeregisterAlias(alias string) {
	d.aliases.deregister(alias)
}

// LookupAlias 未命中返回 Nonexistent
func (d *Director) LookupAlias(alias string) ActorID {
	return d.aliases.lookup(alias)
}

// IsAlive id 是否仍在注册表里
func (d *Director) IsAlive(id ActorID) bool {
	_, ok := d.actors.Get(uint64(id))
	return ok
}

// LiveActors 存活 actor id 快照，升序
func (d *Director) LiveActors() []ActorID {
	var ids []ActorID
	d.actors.Range(func(key uint64, _ *actorRecord) bool {
		ids = append(ids, ActorID(key))
		return true
	})
	slices.Sort(ids)
	return ids
}

// Shutdown 优雅关闭：拒绝新建与新消息，杀掉全部存活 actor，
// 再释放池类调度器
func (d *Director) Shutdown(timeout time.Duration) error {
	if !d.shuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	for _, id := range d.LiveActors() {
		d.Kill(id, nil)
	}

	d.schedMu.RLock()
	defer d.schedMu.RUnlock()
	for name, scheduler := range d.schedulers {
		releasable, ok := scheduler.(interface{ Release(time.Duration) error })
		if !ok {
			continue
		}
		if err := releasable.Release(timeout); err != nil {
			glog.Errorf("release scheduler %s: %v", name, err)
		}
	}
	return nil
}
