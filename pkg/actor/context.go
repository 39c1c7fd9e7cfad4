package actor

import (
	"time"
)

var _ IContext = (*actorContext)(nil)

// actorContext 执行上下文实现，每个 actor 单元一个。
// 所有操作都委托给 Director，自己不持有任何注册表状态。
type actorContext struct {
	actor *Actor
}

func newActorContext(a *Actor) *actorContext {
	return &actorContext{actor: a}
}

func (c *actorContext) Self() ActorID {
	return c.actor.id
}

func (c *actorContext) TrapExit(trap bool) {
	c.actor.director.SetExitTrapping(c.actor.id, trap)
}

func (c *actorContext) Send(to ActorID, message interface{}) error {
	return c.actor.director.SendMessage(to, message)
}

func (c *actorContext) SendAfter(delay time.Duration, to ActorID, message interface{}) (*Timer, error) {
	return c.actor.director.SendAfter(delay, to, message)
}

func (c *actorContext) Create(behavior IBehavior, opts ...Option) (ActorID, error) {
	return c.actor.director.CreateActor(behavior, opts...)
}

func (c *actorContext) Kill(id ActorID, reason error) {
	c.actor.director.Kill(id, reason)
}

func (c *actorContext) Watch(id ActorID) WatchID {
	return c.actor.director.AddWatch(c.actor.id, id)
}

func (c *actorContext) Unwatch(id ActorID, watchID WatchID) {
	c.actor.director.RemoveWatch(id, watchID)
}

func (c *actorContext) Bind(id ActorID) {
	c.BindPair(c.actor.id, id)
}

func (c *actorContext) BindPair(id1, id2 ActorID) {
	c.actor.director.Bind(id1, id2)
}

func (c *actorContext) Unbind(id ActorID) {
	c.UnbindPair(c.actor.id, id)
}

func (c *actorContext) UnbindPair(id1, id2 ActorID) {
	c.actor.director.Unbind(id1, id2)
}

// Receive 阻塞接收，actor 被杀死时通过 dying 通道解除阻塞
func (c *actorContext) Receive() (interface{}, error) {
	return c.actor.mailbox.Take(c.actor.dying)
}

func (c *actorContext) ShouldDie() bool {
	return c.actor.ShouldDie()
}

func (c *actorContext) RegisterAlias(alias string, id ActorID) bool {
	return c.actor.director.RegisterAlias(alias, id)
}

func (c *actorContext) ReplaceAlias(alias string, oldID, newID ActorID) bool {
	return c.actor.director.ReplaceAlias(alias, oldID, newID)
}

func (c *actorContext) DeregisterAlias(alias string) {
	c.actor.director.DeregisterAlias(alias)
}

func (c *actorContext) LookupAlias(alias string) ActorID {
	return c.actor.director.LookupAlias(alias)
}
