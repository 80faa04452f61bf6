package mobile

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"dog-tennis-catch/content/app"
	"dog-tennis-catch/content/config"
)

func init() {
	mobile.SetGame(app.NewGame(config.Default(), time.Now().UnixNano()))
}

// Dummy 空的导出函数
//
// gomobile 不会编译没有导出函数的包
func Dummy() {}
