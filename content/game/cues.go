package game

import (
	"time"

	"dog-tennis-catch/content/tone"
)

type Cue int

const (
	CueCatch Cue = iota
	CuePenalty
	CueLevelUp
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueCatch:
		return "catch"
	case CuePenalty:
		return "penalty"
	case CueLevelUp:
		return "level-up"
	case CueGameOver:
		return "game-over"
	}
	return "unknown"
}

// CuePlayer 播放提示音，失败时静默，不能阻塞游戏
type CuePlayer interface {
	PlayCue(c Cue)
}

type SilentCues struct{}

func (SilentCues) PlayCue(Cue) {}

func note(offsetMs int, freq float64, durMs int, vol float64) tone.Note {
	return tone.Note{
		Offset: time.Duration(offsetMs) * time.Millisecond,
		Tone:   tone.Tone{Freq: freq, Duration: time.Duration(durMs) * time.Millisecond, Volume: vol},
	}
}

var cueSequences = map[Cue]tone.Sequence{
	// 上扬的叮声
	CueCatch: {
		note(0, 880, 80, 0.4),
		note(80, 1100, 120, 0.3),
	},
	// 低沉的嗡声
	CuePenalty: {
		note(0, 200, 150, 0.5),
		note(50, 150, 150, 0.4),
	},
	CueLevelUp: {
		note(0, 523, 100, 0.4),
		note(100, 659, 100, 0.4),
		note(200, 784, 150, 0.4),
		note(350, 1047, 250, 0.5),
	},
	// 四个逐渐下降的音
	CueGameOver: {
		note(0, 440, 200, 0.5),
		note(200, 330, 200, 0.5),
		note(400, 220, 300, 0.5),
		note(700, 165, 500, 0.6),
	},
}

// Sequence 该提示音的 (偏移, 音调) 列表
func (c Cue) Sequence() tone.Sequence {
	return cueSequences[c]
}

var AllCues = []Cue{CueCatch, CuePenalty, CueLevelUp, CueGameOver}
