package config

type Mode int

const (
	ModeIntro Mode = iota
	ModePlaying
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeIntro:
		return "intro"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game-over"
	}
	return "unknown"
}

const (
	ScreenWidth    = 390
	ScreenHeight   = 844
	TitleFontSize  = 36
	ScoreFontSize  = 32
	LevelFontSize  = 24
	RestartSize    = 20
	GameOverSize   = 36
	FinalScoreSize = 24
)

// 玩家可移动区域的内边距
const (
	PlayerInsetSide   = 75
	PlayerInsetBottom = 75
	PlayerInsetTop    = 150
	PlayerStartY      = 200
)

const (
	SpawnInset      = 50 // 球、猫、危险狗的水平内边距
	IntroSpawnInset = 30
	BallOffsetY     = 50
	CatOffsetY      = 50
	DangerOffsetY   = 70
	IntroOffsetY    = 30
	IntroFallToY    = -50
)
