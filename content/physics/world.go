package physics

import (
	"time"

	"golang.org/x/image/math/f64"

	"dog-tennis-catch/content/utils"
)

type Shape int

const (
	Circle Shape = iota
	Rect
)

// Body 碰撞体，Pos 是中心点的世界坐标
type Body struct {
	ID          int
	Category    uint32
	ContactMask uint32
	Shape       Shape
	Radius      float64  // 圆形
	Size        f64.Vec2 // 矩形的完整宽高
	Pos         f64.Vec2
	Vel         f64.Vec2
	Dynamic     bool // 静态物体不受重力影响
}

// Contact 一次开始接触事件，A 总是先加入的那个
type Contact struct {
	A, B *Body
}

// Categories 两个物体的类别
func (c Contact) Categories() (uint32, uint32) {
	return c.A.Category, c.B.Category
}

type pairKey struct{ a, b int }

// World 所有物体以及待处理的碰撞队列
type World struct {
	Gravity  f64.Vec2 // 世界单位/秒²
	bodies   map[int]*Body
	order    []int
	touching map[pairKey]bool
	contacts []Contact
}

func NewWorld(gravity f64.Vec2) *World {
	return &World{
		Gravity:  gravity,
		bodies:   make(map[int]*Body),
		touching: make(map[pairKey]bool),
	}
}

// Add 加入物体，ID 必须唯一
func (w *World) Add(b *Body) {
	if _, ok := w.bodies[b.ID]; ok {
		return
	}
	w.bodies[b.ID] = b
	w.order = append(w.order, b.ID)
}

func (w *World) Remove(id int) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	for i, v := range w.order {
		if v == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for k := range w.touching {
		if k.a == id || k.b == id {
			delete(w.touching, k)
		}
	}
}

func (w *World) Body(id int) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

func (w *World) Len() int {
	return len(w.bodies)
}

// Step 积分动态物体，并记录本步新开始的接触
func (w *World) Step(dt time.Duration) {
	sec := dt.Seconds()
	for _, id := range w.order {
		b := w.bodies[id]
		if !b.Dynamic {
			continue
		}
		b.Vel[0] += w.Gravity[0] * sec
		b.Vel[1] += w.Gravity[1] * sec
		b.Pos[0] += b.Vel[0] * sec
		b.Pos[1] += b.Vel[1] * sec
	}

	for i := 0; i < len(w.order); i++ {
		a := w.bodies[w.order[i]]
		for j := i + 1; j < len(w.order); j++ {
			b := w.bodies[w.order[j]]
			if a.Category&b.ContactMask == 0 && b.Category&a.ContactMask == 0 {
				continue
			}
			key := pairKey{a.ID, b.ID}
			if Overlaps(a, b) {
				if !w.touching[key] {
					w.touching[key] = true
					w.contacts = append(w.contacts, Contact{A: a, B: b})
				}
			} else {
				delete(w.touching, key)
			}
		}
	}
}

// Drain 按发生顺序取出并清空碰撞队列
func (w *World) Drain() []Contact {
	out := w.contacts
	w.contacts = nil
	return out
}

// Overlaps 判断两个碰撞体是否重叠
func Overlaps(a, b *Body) bool {
	switch {
	case a.Shape == Circle && b.Shape == Circle:
		return utils.GetDistance(a.Pos[0], a.Pos[1], b.Pos[0], b.Pos[1]) < a.Radius+b.Radius
	case a.Shape == Rect && b.Shape == Rect:
		return abs(a.Pos[0]-b.Pos[0]) < (a.Size[0]+b.Size[0])/2 &&
			abs(a.Pos[1]-b.Pos[1]) < (a.Size[1]+b.Size[1])/2
	case a.Shape == Circle:
		return circleRect(a, b)
	default:
		return circleRect(b, a)
	}
}

func circleRect(c, r *Body) bool {
	hw, hh := r.Size[0]/2, r.Size[1]/2
	nx := utils.Clamp(c.Pos[0], r.Pos[0]-hw, r.Pos[0]+hw)
	ny := utils.Clamp(c.Pos[1], r.Pos[1]-hh, r.Pos[1]+hh)
	return utils.GetDistance(c.Pos[0], c.Pos[1], nx, ny) < c.Radius
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
