package game

import (
	"math/rand"
	"time"

	"dog-tennis-catch/content/anim"
	"dog-tennis-catch/content/config"
	"dog-tennis-catch/content/sched"
	"dog-tennis-catch/content/utils"
)

type Stream int

const (
	StreamBall Stream = iota
	StreamCat
	StreamDangerDog
)

// 间隔过短时推迟的额外时间
const correctiveDelay = 100 * time.Millisecond

// arena 创建和销毁实体，由 Game 实现
type arena interface {
	spawn(kind Kind, x, y float64) *Entity
	destroy(e *Entity)
}

// Spawner 管理各类下落物的定时生成
type Spawner struct {
	session *Session
	clock   *sched.Scheduler
	timers  *sched.Group // 游戏中的生成计时器，结束时一起取消
	rng     *rand.Rand
	tuning  config.Tuning
	arena   arena

	introLive bool
}

func NewSpawner(s *Session, clock *sched.Scheduler, rng *rand.Rand, t config.Tuning, a arena) *Spawner {
	return &Spawner{
		session: s,
		clock:   clock,
		timers:  clock.NewGroup(),
		rng:     rng,
		tuning:  t,
		arena:   a,
	}
}

// Start 立即执行一次该流的生成逻辑
func (sp *Spawner) Start(stream Stream) {
	sp.fire(stream)
}

// ScheduleNext 在 delay 之后执行该流的生成逻辑
func (sp *Spawner) ScheduleNext(stream Stream, delay time.Duration) {
	sp.timers.After(delay, func() { sp.fire(stream) })
}

// StopAll 取消所有待执行的生成计时器
func (sp *Spawner) StopAll() int {
	return sp.timers.StopAll()
}

func (sp *Spawner) Pending() int {
	return sp.timers.Len()
}

func (sp *Spawner) fire(stream Stream) {
	switch stream {
	case StreamBall, StreamCat:
		sp.fireFalling(stream)
	case StreamDangerDog:
		sp.checkDangerDog()
	}
}

func (sp *Spawner) fireFalling(stream Stream) {
	now := sp.clock.Now()
	if wait := sp.session.GapRemaining(now); wait > 0 {
		// 太快了，推迟这次生成
		sp.ScheduleNext(stream, wait+correctiveDelay)
		return
	}

	var next time.Duration
	if stream == StreamBall {
		sp.spawnFalling(KindBall, config.BallOffsetY)
		next = utils.UniformDuration(sp.rng, sp.session.BallSpawnMin, sp.session.BallSpawnMax)
	} else {
		sp.spawnFalling(KindCat, config.CatOffsetY)
		next = utils.UniformDuration(sp.rng, sp.session.CatSpawnMin, sp.session.CatSpawnMax)
	}
	sp.session.MarkSpawn(now)
	sp.ScheduleNext(stream, next)
}

func (sp *Spawner) checkDangerDog() {
	if !sp.session.Started {
		return
	}
	level := sp.session.Level
	if sp.rng.Float64() < SpawnChance(level) {
		sp.spawnFalling(KindDangerDog, config.DangerOffsetY)
	}
	jitter := utils.UniformDuration(sp.rng, 0, dangerJitter)
	sp.ScheduleNext(StreamDangerDog, DangerCheckInterval(level)+jitter)
}

func (sp *Spawner) spawnFalling(kind Kind, offsetY float64) *Entity {
	x := utils.Uniform(sp.rng, config.SpawnInset, sp.tuning.Width-config.SpawnInset)
	return sp.arena.spawn(kind, x, sp.tuning.Height+offsetY)
}

// StartIntro 开始标题画面的装饰球循环，游戏开始后自行停止
func (sp *Spawner) StartIntro() {
	sp.introLive = true
	sp.introTick()
}

func (sp *Spawner) StopIntro() {
	sp.introLive = false
}

func (sp *Spawner) introTick() {
	if !sp.introLive || sp.session.Started {
		return
	}

	x := utils.Uniform(sp.rng, config.IntroSpawnInset, sp.tuning.Width-config.IntroSpawnInset)
	y := sp.tuning.Height + config.IntroOffsetY
	ball := sp.arena.spawn(KindIntroBall, x, y)
	ball.Rotation = utils.Uniform(sp.rng, -3, 3)

	// 纯动画下落，带一点横向漂移和旋转
	fall := utils.UniformDuration(sp.rng, 2500*time.Millisecond, 4*time.Second)
	curveX := utils.Uniform(sp.rng, -50, 50)
	spin := utils.Uniform(sp.rng, -6, 6)
	ball.Run(anim.Sequence(
		anim.Group(
			anim.MoveBy(curveX, config.IntroFallToY-y, fall, anim.Linear),
			anim.RotateBy(spin, fall, anim.Linear),
		),
		anim.Call(func() { sp.arena.destroy(ball) }),
	))

	sp.clock.After(utils.UniformDuration(sp.rng, 300*time.Millisecond, 700*time.Millisecond), sp.introTick)
}
