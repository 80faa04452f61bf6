package physics

import (
	"math"
	"testing"
	"time"

	"golang.org/x/image/math/f64"
)

const (
	catA uint32 = 1 << 0
	catB uint32 = 1 << 1
	catC uint32 = 1 << 2
)

func TestGravityIntegration(t *testing.T) {
	w := NewWorld(f64.Vec2{0, -300})
	b := &Body{ID: 1, Shape: Circle, Radius: 10, Pos: f64.Vec2{0, 1000}, Dynamic: true}
	w.Add(b)

	for i := 0; i < 60; i++ {
		w.Step(time.Second / 60)
	}
	if math.Abs(b.Vel[1]+300) > 1e-3 {
		t.Errorf("velocity after 1s = %v, want -300", b.Vel[1])
	}
	if b.Pos[1] >= 1000-140 || b.Pos[1] <= 1000-160 {
		t.Errorf("position after 1s = %v, want about 850", b.Pos[1])
	}
}

func TestStaticBodyDoesNotFall(t *testing.T) {
	w := NewWorld(f64.Vec2{0, -300})
	b := &Body{ID: 1, Shape: Rect, Size: f64.Vec2{100, 100}, Pos: f64.Vec2{0, 200}}
	w.Add(b)
	w.Step(time.Second)
	if b.Pos[1] != 200 {
		t.Errorf("static body moved to %v", b.Pos)
	}
}

func TestBeginContactOnlyOnce(t *testing.T) {
	w := NewWorld(f64.Vec2{})
	player := &Body{ID: 1, Category: catA, ContactMask: catB, Shape: Rect, Size: f64.Vec2{100, 100}}
	ball := &Body{ID: 2, Category: catB, ContactMask: catA, Shape: Circle, Radius: 30, Pos: f64.Vec2{0, 60}}
	w.Add(player)
	w.Add(ball)

	w.Step(time.Millisecond)
	w.Step(time.Millisecond)
	got := w.Drain()
	if len(got) != 1 {
		t.Fatalf("contacts = %d, want 1", len(got))
	}
	if got[0].A != player || got[0].B != ball {
		t.Errorf("contact order not stable: %+v", got[0])
	}
	if len(w.Drain()) != 0 {
		t.Error("Drain did not empty the queue")
	}

	ball.Pos[1] = 500
	w.Step(time.Millisecond)
	ball.Pos[1] = 60
	w.Step(time.Millisecond)
	if len(w.Drain()) != 1 {
		t.Error("separate-then-touch should begin a new contact")
	}
}

func TestMaskFiltersPairs(t *testing.T) {
	w := NewWorld(f64.Vec2{})
	w.Add(&Body{ID: 1, Category: catB, ContactMask: catA, Shape: Circle, Radius: 30})
	w.Add(&Body{ID: 2, Category: catC, ContactMask: catA, Shape: Circle, Radius: 30})
	w.Step(time.Millisecond)
	if n := len(w.Drain()); n != 0 {
		t.Errorf("bodies without matching masks reported %d contacts", n)
	}
}

func TestRemovePurgesContactState(t *testing.T) {
	w := NewWorld(f64.Vec2{})
	w.Add(&Body{ID: 1, Category: catA, ContactMask: catB, Shape: Circle, Radius: 10})
	w.Add(&Body{ID: 2, Category: catB, ContactMask: catA, Shape: Circle, Radius: 10})
	w.Step(time.Millisecond)
	w.Drain()

	w.Remove(2)
	if _, ok := w.Body(2); ok || w.Len() != 1 {
		t.Fatal("body not removed")
	}
	w.Add(&Body{ID: 2, Category: catB, ContactMask: catA, Shape: Circle, Radius: 10})
	w.Step(time.Millisecond)
	if n := len(w.Drain()); n != 1 {
		t.Errorf("re-added body contacts = %d, want 1", n)
	}
}

func TestCircleRectOverlap(t *testing.T) {
	r := &Body{Shape: Rect, Size: f64.Vec2{100, 100}}
	near := &Body{Shape: Circle, Radius: 20, Pos: f64.Vec2{62, 62}}
	far := &Body{Shape: Circle, Radius: 20, Pos: f64.Vec2{70, 70}}
	if !Overlaps(near, r) || !Overlaps(r, near) {
		t.Error("corner overlap missed")
	}
	if Overlaps(far, r) {
		t.Error("circle past the corner reported overlapping")
	}
}
