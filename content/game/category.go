package game

// 碰撞类别位掩码
const (
	CategoryPlayer    uint32 = 0x1 << 0
	CategoryBall      uint32 = 0x1 << 1
	CategoryCat       uint32 = 0x1 << 2
	CategoryDangerDog uint32 = 0x1 << 3
)

type Kind int

const (
	KindPlayer Kind = iota
	KindBall
	KindCat
	KindDangerDog
	KindIntroBall
	KindIntroLogo
	KindCaughtDog // 撞上玩家后播放结束动画的危险狗，已没有碰撞体
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBall:
		return "ball"
	case KindCat:
		return "cat"
	case KindDangerDog:
		return "danger-dog"
	case KindIntroBall:
		return "intro-ball"
	case KindIntroLogo:
		return "intro-logo"
	case KindCaughtDog:
		return "caught-dog"
	}
	return "unknown"
}
