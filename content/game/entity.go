package game

import (
	"image/color"

	"golang.org/x/image/math/f64"

	"dog-tennis-catch/content/anim"
	"dog-tennis-catch/content/physics"
	"dog-tennis-catch/content/sched"
)

// Entity 场景中的一个可绘制对象，ID 与其碰撞体的 ID 相同
type Entity struct {
	anim.Actor
	ID     int
	Kind   Kind
	Size   f64.Vec2 // 绘制尺寸
	Z      int
	Hidden bool
	Body   *physics.Body // 装饰物为 nil
	expire *sched.Timer  // 超时自动移除
}

// Label 文字节点
type Label struct {
	anim.Actor
	Name     string
	Text     string
	FontSize float64
	Color    color.RGBA
	Z        int
	Hidden   bool
}

var (
	colorWhite  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorYellow = color.RGBA{0xff, 0xff, 0x00, 0xff}
	colorRed    = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// 各类实体的绘制尺寸、层级与碰撞体
type kindSpec struct {
	size   f64.Vec2
	z      int
	shape  physics.Shape
	radius float64
	rect   f64.Vec2
	cat    uint32
	mask   uint32
}

var kindSpecs = map[Kind]kindSpec{
	KindPlayer: {
		size: f64.Vec2{150, 150}, z: 10, shape: physics.Rect, rect: f64.Vec2{100, 100},
		cat: CategoryPlayer, mask: CategoryBall | CategoryCat | CategoryDangerDog,
	},
	// 猫的碰撞体比图片小，更难接到
	KindBall:      {size: f64.Vec2{60, 60}, z: 5, shape: physics.Circle, radius: 30, cat: CategoryBall, mask: CategoryPlayer},
	KindCat:       {size: f64.Vec2{100, 100}, z: 5, shape: physics.Circle, radius: 20, cat: CategoryCat, mask: CategoryPlayer},
	KindDangerDog: {size: f64.Vec2{90, 155}, z: 6, shape: physics.Circle, radius: 35, cat: CategoryDangerDog, mask: CategoryPlayer},
	KindIntroBall: {size: f64.Vec2{50, 50}, z: 5},
	KindIntroLogo: {size: f64.Vec2{350, 400}, z: 50},
}
