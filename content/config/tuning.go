package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/BurntSushi/toml"
)

// Tuning 一局游戏开始及重开时使用的节奏参数，TOML 文件中的时长单位为秒
type Tuning struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	Gravity        float64 `toml:"gravity"`          // 重力加速度 m/s²，负数向下
	PointsPerMeter float64 `toml:"points_per_meter"` // 每米对应的世界坐标单位

	BallSpawnMin    float64 `toml:"ball_spawn_min"`
	BallSpawnMax    float64 `toml:"ball_spawn_max"`
	CatSpawnMin     float64 `toml:"cat_spawn_min"`
	CatSpawnMax     float64 `toml:"cat_spawn_max"`
	MinimumSpawnGap float64 `toml:"minimum_spawn_gap"`

	CatStartDelay    float64 `toml:"cat_start_delay"`
	DangerStartDelay float64 `toml:"danger_start_delay"`

	BallTTL   float64 `toml:"ball_ttl"`
	CatTTL    float64 `toml:"cat_ttl"`
	DangerTTL float64 `toml:"danger_ttl"`
}

func Default() Tuning {
	return Tuning{
		Width:            ScreenWidth,
		Height:           ScreenHeight,
		Gravity:          -2.0,
		PointsPerMeter:   150,
		BallSpawnMin:     1.2,
		BallSpawnMax:     2.0,
		CatSpawnMin:      2.5,
		CatSpawnMax:      4.0,
		MinimumSpawnGap:  0.8,
		CatStartDelay:    2.0,
		DangerStartDelay: 5.0,
		BallTTL:          5,
		CatTTL:           5,
		DangerTTL:        6,
	}
}

// Load 在默认值之上解析配置文件，路径为空时直接返回默认值
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

var ErrInvalidTuning = errors.New("invalid tuning")

func (t Tuning) Validate() error {
	if t.Width <= 2*PlayerInsetSide || t.Height <= PlayerInsetTop+PlayerInsetBottom {
		return fmt.Errorf("%w: screen %vx%v too small", ErrInvalidTuning, t.Width, t.Height)
	}
	if t.Gravity >= 0 {
		return fmt.Errorf("%w: gravity must be negative, got %v", ErrInvalidTuning, t.Gravity)
	}
	if t.PointsPerMeter <= 0 {
		return fmt.Errorf("%w: points_per_meter must be positive", ErrInvalidTuning)
	}
	bounds := []struct {
		name     string
		min, max float64
	}{
		{"ball_spawn", t.BallSpawnMin, t.BallSpawnMax},
		{"cat_spawn", t.CatSpawnMin, t.CatSpawnMax},
	}
	for _, b := range bounds {
		if b.min <= 0 || b.max < b.min {
			return fmt.Errorf("%w: %s bounds [%v, %v]", ErrInvalidTuning, b.name, b.min, b.max)
		}
	}
	positive := map[string]float64{
		"minimum_spawn_gap": t.MinimumSpawnGap,
		"ball_ttl":          t.BallTTL,
		"cat_ttl":           t.CatTTL,
		"danger_ttl":        t.DangerTTL,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, name, v)
		}
	}
	if t.CatStartDelay < 0 || t.DangerStartDelay < 0 {
		return fmt.Errorf("%w: start delays must not be negative", ErrInvalidTuning)
	}
	return nil
}

// Seconds 把秒数转换为 time.Duration，按纳秒取整
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
