package sched

import (
	"container/heap"
	"time"
)

// Timer 一个待执行的一次性回调
type Timer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	index   int
	stopped bool
	group   *Group
}

// Stop 取消计时器，已触发或已取消时返回 false
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.index < 0 {
		return false
	}
	t.stopped = true
	if t.group != nil {
		delete(t.group.timers, t)
	}
	return true
}

// Pending 是否仍在等待触发
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && t.index >= 0
}

// Scheduler 游戏时钟和计时器队列，回调都在 Advance 里同步执行
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerHeap
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now 从创建起经过的游戏时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 游戏时间经过 d 之后执行 fn
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{at: s.now + d, seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	return t
}

// Advance 推进 dt，按到期顺序触发计时器。
// 回调里 Now() 等于它自己的到期时间，回调新建的计时器若落在本次窗口内也会触发
func (s *Scheduler) Advance(dt time.Duration) int {
	target := s.now + dt
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.at > target {
			break
		}
		heap.Pop(&s.queue)
		if next.stopped {
			continue
		}
		if next.at > s.now {
			s.now = next.at
		}
		if next.group != nil {
			delete(next.group.timers, next)
		}
		next.fn()
		fired++
	}
	s.now = target
	return fired
}

// Len 等待中的计时器数量，不含已取消的
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.queue {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Group 一组可以一起取消的计时器
type Group struct {
	s      *Scheduler
	timers map[*Timer]struct{}
}

func (s *Scheduler) NewGroup() *Group {
	return &Group{s: s, timers: make(map[*Timer]struct{})}
}

func (g *Group) After(d time.Duration, fn func()) *Timer {
	t := g.s.After(d, fn)
	t.group = g
	g.timers[t] = struct{}{}
	return t
}

// StopAll 取消组内所有计时器
func (g *Group) StopAll() int {
	n := 0
	for t := range g.timers {
		t.stopped = true
		n++
	}
	clear(g.timers)
	return n
}

func (g *Group) Len() int {
	return len(g.timers)
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at == h[j].at {
		return h[i].seq < h[j].seq
	}
	return h[i].at < h[j].at
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
