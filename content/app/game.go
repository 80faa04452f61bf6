package app

import (
	"math/rand"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"dog-tennis-catch/content/config"
	"dog-tennis-catch/content/game"
	"dog-tennis-catch/content/sound"
	"dog-tennis-catch/content/utils"
)

type Game struct {
	core    *game.Game
	images  map[game.Kind]*ebiten.Image
	touches []ebiten.TouchID
	held    []ebiten.TouchID
}

// NewGame 创建窗口无关的游戏对象，桌面和移动端共用
func NewGame(t config.Tuning, seed int64) *Game {
	InitFont()
	return &Game{
		core:   game.New(t, sound.Open(sound.Speaker), rand.New(rand.NewSource(seed))),
		images: InitImage(),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.resolveInput()
	g.core.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) toWorld(x, y int) (float64, float64) {
	return utils.ToWorld(float64(x), float64(y), g.core.Tuning().Height)
}

func (g *Game) resolveInput() {
	// 触屏
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		g.core.Press(g.toWorld(ebiten.TouchPosition(id)))
	}
	g.held = ebiten.AppendTouchIDs(g.held[:0])
	for _, id := range g.held {
		if slices.Contains(g.touches, id) {
			continue
		}
		g.core.Drag(g.toWorld(ebiten.TouchPosition(id)))
		break
	}

	// 鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.core.Press(g.toWorld(ebiten.CursorPosition()))
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.core.Drag(g.toWorld(ebiten.CursorPosition()))
	}

	// 空格键只用于开始和重开
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.core.Mode() != config.ModePlaying {
		g.core.Press(0, 0)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.core.Background())
	h := g.core.Tuning().Height

	for _, e := range g.core.Entities() {
		if e.Hidden {
			continue
		}
		img := g.images[e.Kind]
		if img == nil {
			continue
		}
		b := img.Bounds()
		iw, ih := float64(b.Dx()), float64(b.Dy())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-iw/2, -ih/2)
		op.GeoM.Scale(e.Size[0]/iw*e.Scale, e.Size[1]/ih*e.Scale)
		// 世界坐标逆时针为正，屏幕 y 轴朝下
		op.GeoM.Rotate(-e.Rotation)
		op.GeoM.Translate(utils.ToScreen(e.Pos[0], e.Pos[1], h))
		op.ColorScale.ScaleAlpha(float32(e.Alpha))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}

	for _, l := range g.core.Labels() {
		if l.Hidden || l.Alpha <= 0 {
			continue
		}
		face := fitFace(l.Text, l.FontSize*l.Scale, g.core.Tuning().Width-20)
		op := &text.DrawOptions{}
		op.GeoM.Translate(utils.ToScreen(l.Pos[0], l.Pos[1], h))
		op.ColorScale.ScaleWithColor(l.Color)
		op.ColorScale.ScaleAlpha(float32(l.Alpha))
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, l.Text, face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	t := g.core.Tuning()
	return int(t.Width), int(t.Height)
}
