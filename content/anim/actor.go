package anim

import "time"

// Actor 带有动作列表的节点
type Actor struct {
	Node
	actions []Action
	cleared bool
}

func NewActor(x, y float64) Actor {
	return Actor{Node: NewNode(x, y)}
}

func (a *Actor) Run(act Action) {
	a.actions = append(a.actions, act)
}

func (a *Actor) RemoveAllActions() {
	a.actions = nil
	a.cleared = true
}

func (a *Actor) HasActions() bool {
	return len(a.actions) > 0
}

// Update 每个动作推进一次，回调里可以添加或清空动作
func (a *Actor) Update(dt time.Duration) {
	running := a.actions
	a.actions = nil
	a.cleared = false

	var keep []Action
	for _, act := range running {
		if _, done := act.Step(&a.Node, dt); !done {
			keep = append(keep, act)
		}
		if a.cleared {
			a.cleared = false
			return
		}
	}
	a.actions = append(keep, a.actions...)
}
