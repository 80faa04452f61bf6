package anim

import (
	"time"

	"golang.org/x/image/math/f64"
)

// Node 可绘制对象的变换
type Node struct {
	Pos      f64.Vec2
	Rotation float64 // 弧度，逆时针为正
	Scale    float64
	Alpha    float64
}

func NewNode(x, y float64) Node {
	return Node{Pos: f64.Vec2{x, y}, Scale: 1, Alpha: 1}
}

// Action 推进节点，Step 返回没用完的时间和是否已结束
type Action interface {
	Step(n *Node, dt time.Duration) (rest time.Duration, done bool)
	Reset()
}

type Ease func(p float64) float64

func Linear(p float64) float64 { return p }

func EaseIn(p float64) float64 { return p * p }

func EaseInOut(p float64) float64 { return p * p * (3 - 2*p) }

type tween struct {
	dur     time.Duration
	elapsed time.Duration
	ease    Ease
	started bool
	last    float64
	begin   func(n *Node)
	apply   func(n *Node, p, dp float64)
}

func (t *tween) Step(n *Node, dt time.Duration) (time.Duration, bool) {
	if !t.started {
		t.started = true
		if t.begin != nil {
			t.begin(n)
		}
	}
	t.elapsed += dt
	var rest time.Duration
	if t.elapsed >= t.dur {
		rest = t.elapsed - t.dur
		t.elapsed = t.dur
	}
	p := 1.0
	if t.dur > 0 {
		p = float64(t.elapsed) / float64(t.dur)
	}
	e := t.ease(p)
	t.apply(n, e, e-t.last)
	t.last = e
	return rest, t.elapsed >= t.dur
}

func (t *tween) Reset() {
	t.elapsed = 0
	t.started = false
	t.last = 0
}

func lerp(a, b, p float64) float64 { return a + (b-a)*p }

// MoveTo 移动到绝对位置
func MoveTo(x, y float64, d time.Duration, ease Ease) Action {
	var from f64.Vec2
	return &tween{dur: d, ease: ease,
		begin: func(n *Node) { from = n.Pos },
		apply: func(n *Node, p, _ float64) {
			n.Pos[0] = lerp(from[0], x, p)
			n.Pos[1] = lerp(from[1], y, p)
		},
	}
}

// MoveBy 增量移动，可以和其他移动叠加
func MoveBy(dx, dy float64, d time.Duration, ease Ease) Action {
	return &tween{dur: d, ease: ease,
		apply: func(n *Node, _, dp float64) {
			n.Pos[0] += dx * dp
			n.Pos[1] += dy * dp
		},
	}
}

func RotateBy(angle float64, d time.Duration, ease Ease) Action {
	return &tween{dur: d, ease: ease,
		apply: func(n *Node, _, dp float64) { n.Rotation += angle * dp },
	}
}

func ScaleTo(s float64, d time.Duration, ease Ease) Action {
	var from float64
	return &tween{dur: d, ease: ease,
		begin: func(n *Node) { from = n.Scale },
		apply: func(n *Node, p, _ float64) { n.Scale = lerp(from, s, p) },
	}
}

// ScaleBy 以开始时的缩放为基准相乘
func ScaleBy(factor float64, d time.Duration, ease Ease) Action {
	var from float64
	return &tween{dur: d, ease: ease,
		begin: func(n *Node) { from = n.Scale },
		apply: func(n *Node, p, _ float64) { n.Scale = lerp(from, from*factor, p) },
	}
}

func FadeTo(alpha float64, d time.Duration) Action {
	var from float64
	return &tween{dur: d, ease: Linear,
		begin: func(n *Node) { from = n.Alpha },
		apply: func(n *Node, p, _ float64) { n.Alpha = lerp(from, alpha, p) },
	}
}

func Wait(d time.Duration) Action {
	return &tween{dur: d, ease: Linear, apply: func(*Node, float64, float64) {}}
}

type call struct {
	fn   func()
	done bool
}

// Call 执行一次 fn，不占用时间
func Call(fn func()) Action { return &call{fn: fn} }

func (c *call) Step(_ *Node, dt time.Duration) (time.Duration, bool) {
	if !c.done {
		c.done = true
		c.fn()
	}
	return dt, true
}

func (c *call) Reset() { c.done = false }

type sequence struct {
	actions []Action
	cur     int
}

func Sequence(actions ...Action) Action { return &sequence{actions: actions} }

func (s *sequence) Step(n *Node, dt time.Duration) (time.Duration, bool) {
	for s.cur < len(s.actions) {
		rest, done := s.actions[s.cur].Step(n, dt)
		if !done {
			return 0, false
		}
		s.cur++
		dt = rest
	}
	return dt, true
}

func (s *sequence) Reset() {
	s.cur = 0
	for _, a := range s.actions {
		a.Reset()
	}
}

type group struct {
	actions []Action
	done    []bool
	rest    []time.Duration
}

// Group 并行执行，最长的那个结束时结束
func Group(actions ...Action) Action {
	return &group{actions: actions, done: make([]bool, len(actions)), rest: make([]time.Duration, len(actions))}
}

func (g *group) Step(n *Node, dt time.Duration) (time.Duration, bool) {
	all := true
	for i, a := range g.actions {
		if g.done[i] {
			continue
		}
		g.rest[i], g.done[i] = a.Step(n, dt)
		if !g.done[i] {
			all = false
		}
	}
	if !all {
		return 0, false
	}
	rest := dt
	for _, r := range g.rest {
		if r < rest {
			rest = r
		}
	}
	return rest, true
}

func (g *group) Reset() {
	for i, a := range g.actions {
		a.Reset()
		g.done[i] = false
		g.rest[i] = 0
	}
}

type forever struct {
	action Action
}

func RepeatForever(a Action) Action { return &forever{action: a} }

func (f *forever) Step(n *Node, dt time.Duration) (time.Duration, bool) {
	for {
		rest, done := f.action.Step(n, dt)
		if !done {
			return 0, false
		}
		f.action.Reset()
		// 时长为 0 时避免死循环
		if rest >= dt {
			return 0, false
		}
		dt = rest
	}
}

func (f *forever) Reset() { f.action.Reset() }
