package app

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	arcadeFaceSource *text.GoTextFaceSource
)

func InitFont() {
	// 加载字体
	s, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		log.Fatal(err)
	}
	arcadeFaceSource = s
}

// fitFace 文字超出 maxWidth 时缩小字号
func fitFace(str string, size, maxWidth float64) *text.GoTextFace {
	face := &text.GoTextFace{Source: arcadeFaceSource, Size: size}
	if w, _ := text.Measure(str, face, 0); w > maxWidth {
		face.Size = size * maxWidth / w
	}
	return face
}
