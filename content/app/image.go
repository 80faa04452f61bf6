package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dog-tennis-catch/content/game"
)

// 贴图边长，绘制时再缩放到实体尺寸
const spriteSize = 128

var (
	ballYellow = color.RGBA{0xd4, 0xe1, 0x57, 0xff}
	dogBrown   = color.RGBA{0xa0, 0x6a, 0x3c, 0xff}
	dogDark    = color.RGBA{0x5d, 0x3a, 0x1a, 0xff}
	catGrey    = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
	dangerRed  = color.RGBA{0xc6, 0x28, 0x28, 0xff}
	eyeBlack   = color.RGBA{0x10, 0x10, 0x10, 0xff}
	noseColor  = color.RGBA{0xf4, 0x8f, 0xb1, 0xff}
)

// InitImage 生成所有实体的贴图
func InitImage() map[game.Kind]*ebiten.Image {
	ball := newBallImage(spriteSize)
	danger := newDangerDogImage()
	return map[game.Kind]*ebiten.Image{
		game.KindPlayer:    newDogImage(),
		game.KindBall:      ball,
		game.KindIntroBall: ball,
		game.KindCat:       newCatImage(),
		game.KindDangerDog: danger,
		game.KindCaughtDog: danger,
		game.KindIntroLogo: newLogoImage(),
	}
}

func newBallImage(size float32) *ebiten.Image {
	img := ebiten.NewImage(int(size), int(size))
	r := size / 2
	vector.DrawFilledCircle(img, r, r, r-2, ballYellow, true)
	// 网球的两条弧线
	vector.StrokeCircle(img, -r*0.45, r, r*0.9, size/24, color.White, true)
	vector.StrokeCircle(img, size+r*0.45, r, r*0.9, size/24, color.White, true)
	return img
}

func drawFace(img *ebiten.Image, cx, cy, scale float32) {
	vector.DrawFilledCircle(img, cx-18*scale, cy-8*scale, 7*scale, eyeBlack, true)
	vector.DrawFilledCircle(img, cx+18*scale, cy-8*scale, 7*scale, eyeBlack, true)
}

func newDogImage() *ebiten.Image {
	img := ebiten.NewImage(spriteSize, spriteSize)
	c := float32(spriteSize) / 2
	// 耳朵
	vector.DrawFilledRect(img, 10, 20, 26, 60, dogDark, true)
	vector.DrawFilledRect(img, spriteSize-36, 20, 26, 60, dogDark, true)
	vector.DrawFilledCircle(img, c, c+6, 48, dogBrown, true)
	drawFace(img, c, c, 1)
	vector.DrawFilledCircle(img, c, c+18, 10, eyeBlack, true)
	vector.StrokeLine(img, c, c+28, c, c+38, 3, eyeBlack, true)
	return img
}

func newCatImage() *ebiten.Image {
	img := ebiten.NewImage(spriteSize, spriteSize)
	c := float32(spriteSize) / 2
	vector.DrawFilledRect(img, 22, 14, 22, 34, catGrey, true)
	vector.DrawFilledRect(img, spriteSize-44, 14, 22, 34, catGrey, true)
	vector.DrawFilledCircle(img, c, c+8, 44, catGrey, true)
	drawFace(img, c, c+6, 0.9)
	vector.DrawFilledCircle(img, c, c+20, 5, noseColor, true)
	// 胡子
	for _, dy := range []float32{16, 24} {
		vector.StrokeLine(img, c-46, c+dy, c-14, c+20, 2, eyeBlack, true)
		vector.StrokeLine(img, c+14, c+20, c+46, c+dy, 2, eyeBlack, true)
	}
	return img
}

// 危险狗是竖长的，贴图保持 90:155 的比例
func newDangerDogImage() *ebiten.Image {
	w, h := float32(90), float32(155)
	img := ebiten.NewImage(int(w), int(h))
	vector.DrawFilledRect(img, 10, 50, w-20, h-60, dangerRed, true)
	vector.DrawFilledCircle(img, w/2, 45, 38, dangerRed, true)
	vector.DrawFilledRect(img, 4, 8, 18, 40, dogDark, true)
	vector.DrawFilledRect(img, w-22, 8, 18, 40, dogDark, true)
	drawFace(img, w/2, 45, 0.8)
	// 獠牙
	vector.DrawFilledRect(img, w/2-12, 62, 6, 12, color.White, true)
	vector.DrawFilledRect(img, w/2+6, 62, 6, 12, color.White, true)
	return img
}

func newLogoImage() *ebiten.Image {
	w, h := float32(350), float32(400)
	img := ebiten.NewImage(int(w), int(h))
	vector.DrawFilledRect(img, 0, 0, w, h, color.RGBA{0xff, 0xff, 0xff, 0x40}, true)
	vector.StrokeRect(img, 4, 4, w-8, h-8, 8, color.White, true)

	dog := newDogImage()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1.8, 1.8)
	op.GeoM.Translate(float64(w)/2-spriteSize*0.9, 60)
	img.DrawImage(dog, op)

	ball := newBallImage(80)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(w)-120, float64(h)-130)
	img.DrawImage(ball, op)
	return img
}
