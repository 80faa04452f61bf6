package game

import (
	"image/color"
	"math"
	"time"
)

const (
	pointsPerLevel = 10

	gravityGrowth = 1.3
	spawnShrink   = 0.85
	gapShrink     = 0.9

	ballMinFloor = 500 * time.Millisecond
	ballMaxFloor = 800 * time.Millisecond
	catMinFloor  = 1200 * time.Millisecond
	catMaxFloor  = 2 * time.Second
	gapFloor     = 400 * time.Millisecond

	dangerJitter = 2 * time.Second
)

// LevelForScore 每 10 分升一级，最低 1 级
func LevelForScore(score int) int {
	level := int(math.Floor(float64(score)/pointsPerLevel)) + 1
	if level < 1 {
		return 1
	}
	return level
}

// Difficulty 根据分数推进等级，并在升级时加快节奏
type Difficulty struct {
	session   *Session
	onLevelUp func(level int)
}

func NewDifficulty(s *Session, onLevelUp func(level int)) *Difficulty {
	return &Difficulty{session: s, onLevelUp: onLevelUp}
}

// OnScoreChanged 只有新等级严格大于当前等级时才升级
func (d *Difficulty) OnScoreChanged(score int) bool {
	level := LevelForScore(score)
	if level <= d.session.Level {
		return false
	}
	d.session.Level = level
	applyLevelUp(d.session)
	if d.onLevelUp != nil {
		d.onLevelUp(level)
	}
	return true
}

func applyLevelUp(s *Session) {
	s.Gravity *= gravityGrowth
	s.BallSpawnMin = shrink(s.BallSpawnMin, spawnShrink, ballMinFloor)
	s.BallSpawnMax = shrink(s.BallSpawnMax, spawnShrink, ballMaxFloor)
	s.CatSpawnMin = shrink(s.CatSpawnMin, spawnShrink, catMinFloor)
	s.CatSpawnMax = shrink(s.CatSpawnMax, spawnShrink, catMaxFloor)
	s.MinimumSpawnGap = shrink(s.MinimumSpawnGap, gapShrink, gapFloor)
}

func shrink(d time.Duration, factor float64, floor time.Duration) time.Duration {
	v := time.Duration(math.Round(float64(d) * factor))
	if v < floor {
		return floor
	}
	return v
}

// SpawnChance 每次检查时生成危险狗的概率
func SpawnChance(level int) float64 {
	switch {
	case level <= 1:
		return 0.08
	case level == 2:
		return 0.15
	case level == 3:
		return 0.25
	case level == 4:
		return 0.40
	case level == 5:
		return 0.55
	}
	return math.Min(0.85, 0.55+float64(level-5)*0.10)
}

// DangerCheckInterval 危险狗检查的基础间隔，不含随机抖动
func DangerCheckInterval(level int) time.Duration {
	var sec float64
	switch {
	case level <= 1:
		sec = 10.0
	case level == 2:
		sec = 8.0
	case level == 3:
		sec = 6.0
	case level == 4:
		sec = 5.0
	case level == 5:
		sec = 4.0
	default:
		sec = math.Max(2.5, 4.0-float64(level-5)*0.3)
	}
	return time.Duration(math.Round(sec * float64(time.Second)))
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255)), 0xff}
}

// Palette 每一级的背景色，10 级及以上使用最后一个
var Palette = [10]color.RGBA{
	rgb(0.53, 0.81, 0.92), // 天蓝
	rgb(0.6, 0.85, 0.6),   // 浅绿
	rgb(1.0, 0.85, 0.4),   // 金黄
	rgb(1.0, 0.6, 0.4),    // 橙
	rgb(0.9, 0.5, 0.5),    // 鲑红
	rgb(0.7, 0.5, 0.85),   // 紫
	rgb(0.5, 0.5, 0.7),    // 钢蓝
	rgb(0.4, 0.6, 0.6),    // 青
	rgb(0.85, 0.6, 0.75),  // 粉
	rgb(0.3, 0.3, 0.4),    // 深灰
}

func BackgroundForLevel(level int) color.RGBA {
	i := min(level-1, len(Palette)-1)
	if i < 0 {
		i = 0
	}
	return Palette[i]
}
