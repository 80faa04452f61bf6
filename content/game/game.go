package game

import (
	"cmp"
	"fmt"
	"image/color"
	"log"
	"maps"
	"math"
	"math/rand"
	"slices"
	"time"

	"golang.org/x/image/math/f64"

	"dog-tennis-catch/content/anim"
	"dog-tennis-catch/content/config"
	"dog-tennis-catch/content/physics"
	"dog-tennis-catch/content/sched"
	"dog-tennis-catch/content/utils"
)

// 标签名称
const (
	LabelTapToStart = "tapToStart"
	LabelScore      = "score"
	LabelLevel      = "level"
	LabelGameOver   = "gameOver"
	LabelFinalScore = "finalScore"
	LabelRestart    = "restart"
)

// Game 游戏核心：状态机、实体、计时器与物理，不依赖任何渲染框架
type Game struct {
	tuning config.Tuning
	mode   config.Mode
	ending bool // 危险狗结束动画播放中，此时不响应点击

	session    *Session
	clock      *sched.Scheduler
	world      *physics.World
	rng        *rand.Rand
	cues       CuePlayer
	spawner    *Spawner
	difficulty *Difficulty

	uniqueID int
	entities map[int]*Entity
	player   *Entity
	logo     *Entity
	labels   map[string]*Label

	background color.RGBA
}

func New(t config.Tuning, cues CuePlayer, rng *rand.Rand) *Game {
	if cues == nil {
		cues = SilentCues{}
	}
	g := &Game{
		tuning:   t,
		mode:     config.ModeIntro,
		session:  NewSession(t),
		clock:    sched.New(),
		rng:      rng,
		cues:     cues,
		entities: make(map[int]*Entity),
		labels:   make(map[string]*Label),
	}
	g.world = physics.NewWorld(g.gravityVector())
	g.spawner = NewSpawner(g.session, g.clock, rng, t, g)
	g.difficulty = NewDifficulty(g.session, g.levelUp)
	g.background = BackgroundForLevel(1)

	g.showIntro()
	return g
}

func (g *Game) gravityVector() f64.Vec2 {
	return f64.Vec2{0, g.session.Gravity * g.tuning.PointsPerMeter}
}

// Update 推进一帧：计时器、动画、物理、碰撞
func (g *Game) Update(dt time.Duration) {
	g.clock.Advance(dt)

	for _, e := range g.sortedEntities() {
		// 前面的回调可能已经移除了它
		if g.entities[e.ID] != e {
			continue
		}
		e.Update(dt)
	}
	for _, l := range g.Labels() {
		l.Update(dt)
	}

	for _, e := range g.entities {
		if e.Body != nil && !e.Body.Dynamic {
			e.Body.Pos = e.Pos
		}
	}
	g.world.Step(dt)
	for _, e := range g.entities {
		if e.Body != nil && e.Body.Dynamic {
			e.Pos = e.Body.Pos
		}
	}

	for _, c := range g.world.Drain() {
		g.resolve(c)
	}
}

// Press 一次新的按下，坐标为世界坐标
func (g *Game) Press(x, y float64) {
	switch g.mode {
	case config.ModeIntro:
		g.startGame()
	case config.ModeGameOver:
		g.restart()
	case config.ModePlaying:
		g.movePlayer(x, y)
	}
}

// Drag 按住拖动
func (g *Game) Drag(x, y float64) {
	if g.mode == config.ModePlaying {
		g.movePlayer(x, y)
	}
}

func (g *Game) movePlayer(x, y float64) {
	if g.ending || g.player == nil {
		return
	}
	g.player.Pos[0] = utils.Clamp(x, config.PlayerInsetSide, g.tuning.Width-config.PlayerInsetSide)
	g.player.Pos[1] = utils.Clamp(y, config.PlayerInsetBottom, g.tuning.Height-config.PlayerInsetTop)
}

func (g *Game) spawn(kind Kind, x, y float64) *Entity {
	g.uniqueID++
	spec := kindSpecs[kind]
	e := &Entity{
		Actor: anim.NewActor(x, y),
		ID:    g.uniqueID,
		Kind:  kind,
		Size:  spec.size,
		Z:     spec.z,
	}
	if spec.cat != 0 {
		e.Body = &physics.Body{
			ID:          e.ID,
			Category:    spec.cat,
			ContactMask: spec.mask,
			Shape:       spec.shape,
			Radius:      spec.radius,
			Size:        spec.rect,
			Pos:         e.Pos,
			Dynamic:     kind != KindPlayer,
		}
		g.world.Add(e.Body)
	}
	if ttl := g.ttl(kind); ttl > 0 {
		e.expire = g.clock.After(ttl, func() { g.destroy(e) })
	}
	g.entities[e.ID] = e
	return e
}

func (g *Game) ttl(kind Kind) time.Duration {
	switch kind {
	case KindBall:
		return config.Seconds(g.tuning.BallTTL)
	case KindCat:
		return config.Seconds(g.tuning.CatTTL)
	case KindDangerDog:
		return config.Seconds(g.tuning.DangerTTL)
	}
	return 0
}

func (g *Game) destroy(e *Entity) {
	if g.entities[e.ID] != e {
		return
	}
	delete(g.entities, e.ID)
	if e.Body != nil {
		g.world.Remove(e.Body.ID)
	}
	e.expire.Stop()
	e.RemoveAllActions()
}

func (g *Game) destroyKinds(keep *Entity, kinds ...Kind) int {
	n := 0
	for _, e := range g.sortedEntities() {
		if e != keep && slices.Contains(kinds, e.Kind) {
			g.destroy(e)
			n++
		}
	}
	return n
}

func (g *Game) addLabel(name, text string, size float64, c color.RGBA, x, y float64) *Label {
	l := &Label{Actor: anim.NewActor(x, y), Name: name, Text: text, FontSize: size, Color: c, Z: 100}
	g.labels[name] = l
	return l
}

func (g *Game) removeLabel(name string) {
	delete(g.labels, name)
}

func pulse() anim.Action {
	return anim.RepeatForever(anim.Sequence(
		anim.FadeTo(0.3, 500*time.Millisecond),
		anim.FadeTo(1.0, 500*time.Millisecond),
	))
}

// Mode 当前状态；结束动画期间仍为 ModePlaying
func (g *Game) Mode() config.Mode { return g.mode }

// Ending 危险狗结束动画是否正在播放
func (g *Game) Ending() bool { return g.ending }

// Session 返回当前会话状态的副本
func (g *Game) Session() Session { return *g.session }

func (g *Game) Background() color.RGBA { return g.background }

func (g *Game) Tuning() config.Tuning { return g.tuning }

func (g *Game) Player() *Entity { return g.player }

func (g *Game) Label(name string) (*Label, bool) {
	l, ok := g.labels[name]
	return l, ok
}

func (g *Game) sortedEntities() []*Entity {
	out := make([]*Entity, 0, len(g.entities))
	for _, id := range slices.Sorted(maps.Keys(g.entities)) {
		out = append(out, g.entities[id])
	}
	return out
}

// Entities 按绘制顺序返回所有实体
func (g *Game) Entities() []*Entity {
	out := g.sortedEntities()
	slices.SortStableFunc(out, func(a, b *Entity) int { return cmp.Compare(a.Z, b.Z) })
	return out
}

// Labels 按绘制顺序返回所有标签
func (g *Game) Labels() []*Label {
	out := make([]*Label, 0, len(g.labels))
	for _, name := range slices.Sorted(maps.Keys(g.labels)) {
		out = append(out, g.labels[name])
	}
	slices.SortStableFunc(out, func(a, b *Label) int { return cmp.Compare(a.Z, b.Z) })
	return out
}

// Count 统计某类实体的数量
func (g *Game) Count(kind Kind) int {
	n := 0
	for _, e := range g.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (g *Game) showIntro() {
	w, h := g.tuning.Width, g.tuning.Height

	g.logo = g.spawn(KindIntroLogo, w/2, h/2+50)
	g.logo.Run(anim.RepeatForever(anim.Sequence(
		anim.MoveBy(0, 15, 800*time.Millisecond, anim.EaseInOut),
		anim.MoveBy(0, -15, 800*time.Millisecond, anim.EaseInOut),
	)))

	tap := g.addLabel(LabelTapToStart, "Tap to Start!", config.TitleFontSize, colorWhite, w/2, 120)
	tap.Run(pulse())

	g.spawner.StartIntro()
}

func (g *Game) startGame() {
	g.session.Started = true
	g.mode = config.ModePlaying

	g.spawner.StopIntro()
	if g.logo != nil {
		g.destroy(g.logo)
		g.logo = nil
	}
	g.removeLabel(LabelTapToStart)
	g.destroyKinds(nil, KindIntroBall)

	w, h := g.tuning.Width, g.tuning.Height
	g.player = g.spawn(KindPlayer, w/2, config.PlayerStartY)
	g.addLabel(LabelScore, "Score: 0", config.ScoreFontSize, colorWhite, w/2, h-100)
	g.addLabel(LabelLevel, "Level: 1", config.LevelFontSize, colorYellow, w/2, h-150)

	g.spawner.Start(StreamBall)
	// 猫稍后开始，避免和球同步
	g.spawner.ScheduleNext(StreamCat, config.Seconds(g.tuning.CatStartDelay))
	g.spawner.ScheduleNext(StreamDangerDog, config.Seconds(g.tuning.DangerStartDelay))

	log.Println("game started")
}

func (g *Game) levelUp(level int) {
	if l, ok := g.labels[LabelLevel]; ok {
		l.Text = fmt.Sprintf("Level: %d", level)
		l.Run(anim.Sequence(
			anim.ScaleTo(1.5, 200*time.Millisecond, anim.Linear),
			anim.ScaleTo(1.0, 200*time.Millisecond, anim.Linear),
		))
	}
	g.cues.PlayCue(CueLevelUp)
	g.background = BackgroundForLevel(level)
	g.world.Gravity = g.gravityVector()

	// 每次升级都会额外开启一路危险狗检查
	g.spawner.Start(StreamDangerDog)
}

func (g *Game) setScore(score int) {
	g.session.Score = score
	if l, ok := g.labels[LabelScore]; ok {
		l.Text = fmt.Sprintf("Score: %d", score)
	}
}

// beginGameOver 停止一切生成，播放被撞危险狗的放大动画，结束后进入 ModeGameOver
func (g *Game) beginGameOver(caught *Entity) {
	g.ending = true
	g.session.Started = false
	g.spawner.StopAll()

	g.destroyKinds(caught, KindBall, KindCat, KindDangerDog)

	g.player.Hidden = true
	for _, name := range []string{LabelScore, LabelLevel} {
		if l, ok := g.labels[name]; ok {
			l.Hidden = true
		}
	}

	if caught == nil {
		g.showGameOver()
		return
	}

	caught.RemoveAllActions()
	caught.expire.Stop()
	if caught.Body != nil {
		g.world.Remove(caught.Body.ID)
		caught.Body = nil
	}
	caught.Kind = KindCaughtDog
	caught.Z = 200

	w, h := g.tuning.Width, g.tuning.Height
	target := math.Max(w, h) * 1.2
	ratio := target / (math.Max(caught.Size[0], caught.Size[1]) * caught.Scale)
	caught.Run(anim.Sequence(
		anim.MoveTo(w/2, h/2, 300*time.Millisecond, anim.Linear),
		anim.RotateBy(math.Pi*8, 2*time.Second, anim.Linear),
		anim.ScaleBy(ratio, 800*time.Millisecond, anim.EaseIn),
		anim.Call(g.showGameOver),
	))
}

func (g *Game) showGameOver() {
	g.ending = false
	g.mode = config.ModeGameOver
	w, h := g.tuning.Width, g.tuning.Height

	over := g.addLabel(LabelGameOver, "GAME OVER!", config.GameOverSize, colorRed, w/2, h/2+50)
	over.Z = 300
	over.Alpha = 0
	over.Scale = 0.1
	over.Run(anim.Sequence(
		anim.Group(
			anim.FadeTo(1, 300*time.Millisecond),
			anim.ScaleTo(1.2, 300*time.Millisecond, anim.Linear),
		),
		anim.ScaleTo(1.0, 150*time.Millisecond, anim.Linear),
	))

	final := g.addLabel(LabelFinalScore, fmt.Sprintf("Final Score: %d", g.session.Score), config.FinalScoreSize, colorWhite, w/2, h/2-20)
	final.Z = 300
	final.Alpha = 0
	final.Run(anim.Sequence(anim.Wait(300*time.Millisecond), anim.FadeTo(1, 300*time.Millisecond)))

	restart := g.addLabel(LabelRestart, "Tap to Restart", config.RestartSize, colorYellow, w/2, h/2-80)
	restart.Z = 300
	restart.Alpha = 0
	restart.Run(anim.Sequence(anim.Wait(600*time.Millisecond), anim.FadeTo(1, 300*time.Millisecond), pulse()))

	log.Printf("game over, final score %d, level %d", g.session.Score, g.session.Level)
}

func (g *Game) restart() {
	for _, name := range []string{LabelGameOver, LabelFinalScore, LabelRestart} {
		g.removeLabel(name)
	}
	g.destroyKinds(nil, KindCaughtDog)

	g.session.Reset(g.tuning)
	g.world.Gravity = g.gravityVector()
	g.background = BackgroundForLevel(1)

	w := g.tuning.Width
	g.player.RemoveAllActions()
	g.player.Hidden = false
	g.player.Pos = f64.Vec2{w / 2, config.PlayerStartY}
	g.player.Scale = 1

	if l, ok := g.labels[LabelScore]; ok {
		l.Hidden = false
		l.Text = "Score: 0"
	}
	if l, ok := g.labels[LabelLevel]; ok {
		l.Hidden = false
		l.Text = "Level: 1"
		l.Scale = 1
	}

	g.session.Started = true
	g.mode = config.ModePlaying

	// 重开时只恢复球和猫，危险狗要等到下一次升级
	g.spawner.Start(StreamBall)
	g.spawner.ScheduleNext(StreamCat, config.Seconds(g.tuning.CatStartDelay))

	log.Println("game restarted")
}
