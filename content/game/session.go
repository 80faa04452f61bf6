package game

import (
	"time"

	"dog-tennis-catch/content/config"
)

// Session 一局游戏的全部可变状态，重开时恢复默认值
type Session struct {
	Score   int // 可以为负
	Level   int
	Gravity float64 // m/s²

	BallSpawnMin    time.Duration
	BallSpawnMax    time.Duration
	CatSpawnMin     time.Duration
	CatSpawnMax     time.Duration
	MinimumSpawnGap time.Duration

	// 球和猫共用同一个生成时钟
	LastSpawnTime time.Duration
	HasSpawned    bool

	Started bool
}

func NewSession(t config.Tuning) *Session {
	s := &Session{}
	s.Reset(t)
	return s
}

// Reset 恢复默认值，Started 置为 false
func (s *Session) Reset(t config.Tuning) {
	*s = Session{
		Level:           1,
		Gravity:         t.Gravity,
		BallSpawnMin:    config.Seconds(t.BallSpawnMin),
		BallSpawnMax:    config.Seconds(t.BallSpawnMax),
		CatSpawnMin:     config.Seconds(t.CatSpawnMin),
		CatSpawnMax:     config.Seconds(t.CatSpawnMax),
		MinimumSpawnGap: config.Seconds(t.MinimumSpawnGap),
	}
}

// GapRemaining 距离允许下一次生成还差多久，0 表示可以生成
func (s *Session) GapRemaining(now time.Duration) time.Duration {
	if !s.HasSpawned {
		return 0
	}
	since := now - s.LastSpawnTime
	if since >= s.MinimumSpawnGap {
		return 0
	}
	return s.MinimumSpawnGap - since
}

func (s *Session) MarkSpawn(now time.Duration) {
	s.LastSpawnTime = now
	s.HasSpawned = true
}
