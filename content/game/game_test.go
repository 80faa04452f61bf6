package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"dog-tennis-catch/content/config"
	"dog-tennis-catch/content/physics"
)

type cueRecorder struct {
	cues []Cue
}

func (r *cueRecorder) PlayCue(c Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c Cue) int {
	n := 0
	for _, v := range r.cues {
		if v == c {
			n++
		}
	}
	return n
}

func newTestGame(seed int64) (*Game, *cueRecorder) {
	rec := &cueRecorder{}
	return New(config.Default(), rec, rand.New(rand.NewSource(seed))), rec
}

func startedGame(t *testing.T) (*Game, *cueRecorder) {
	t.Helper()
	g, rec := newTestGame(1)
	g.Press(0, 0)
	if g.Mode() != config.ModePlaying {
		t.Fatalf("mode = %v after first press", g.Mode())
	}
	return g, rec
}

// hit 在玩家位置生成一个实体并运行一帧
func hit(g *Game, kind Kind) *Entity {
	p := g.Player().Pos
	e := g.spawn(kind, p[0], p[1])
	g.Update(time.Millisecond)
	return e
}

func runFor(g *Game, d time.Duration) {
	const frame = time.Second / 60
	for ; d > 0; d -= frame {
		g.Update(frame)
	}
}

func TestIntroScreen(t *testing.T) {
	g, _ := newTestGame(1)
	if g.Mode() != config.ModeIntro {
		t.Fatalf("mode = %v, want intro", g.Mode())
	}
	if g.Count(KindIntroLogo) != 1 {
		t.Error("logo missing")
	}
	if _, ok := g.Label(LabelTapToStart); !ok {
		t.Error("tap to start label missing")
	}
	if g.Count(KindIntroBall) != 1 {
		t.Errorf("intro balls = %d, want 1 right away", g.Count(KindIntroBall))
	}

	runFor(g, 3*time.Second)
	if g.Count(KindIntroBall) < 2 {
		t.Errorf("intro balls = %d after 3s", g.Count(KindIntroBall))
	}
}

func TestStartStopsIntro(t *testing.T) {
	g, _ := newTestGame(2)
	runFor(g, 2*time.Second)
	g.Press(10, 10)

	if g.Count(KindIntroBall) != 0 || g.Count(KindIntroLogo) != 0 {
		t.Fatal("intro entities survived the start")
	}
	if _, ok := g.Label(LabelTapToStart); ok {
		t.Error("tap to start label survived the start")
	}
	if g.Count(KindBall) != 1 {
		t.Errorf("balls = %d, want the first ball right away", g.Count(KindBall))
	}
	if p := g.Player().Pos; p[0] != 195 || p[1] != config.PlayerStartY {
		t.Errorf("player at %v", p)
	}

	runFor(g, 5*time.Second)
	if n := g.Count(KindIntroBall); n != 0 {
		t.Errorf("%d intro balls spawned after start", n)
	}
}

func TestPlayerClamped(t *testing.T) {
	g, _ := startedGame(t)

	g.Press(-100, 2000)
	if p := g.Player().Pos; p[0] != 75 || p[1] != 844-150 {
		t.Errorf("press clamped to %v", p)
	}
	g.Drag(1000, -20)
	if p := g.Player().Pos; p[0] != 390-75 || p[1] != 75 {
		t.Errorf("drag clamped to %v", p)
	}
	g.Drag(200, 300)
	if p := g.Player().Pos; p[0] != 200 || p[1] != 300 {
		t.Errorf("drag inside the area moved to %v", p)
	}
}

func TestCatchScoresAndLevelsUp(t *testing.T) {
	g, rec := startedGame(t)

	for i := 0; i < 9; i++ {
		hit(g, KindBall)
	}
	if s := g.Session(); s.Score != 9 || s.Level != 1 {
		t.Fatalf("after 9 catches score=%d level=%d", s.Score, s.Level)
	}
	if rec.count(CueLevelUp) != 0 {
		t.Error("level-up cue before level 2")
	}
	pending := g.spawner.Pending()

	hit(g, KindBall)
	s := g.Session()
	if s.Score != 10 || s.Level != 2 {
		t.Fatalf("after 10 catches score=%d level=%d", s.Score, s.Level)
	}
	if rec.count(CueCatch) != 10 || rec.count(CueLevelUp) != 1 {
		t.Errorf("cues = %v", rec.cues)
	}
	if n := len(rec.cues); rec.cues[n-2] != CueLevelUp || rec.cues[n-1] != CueCatch {
		t.Errorf("level-up cue should come before the catch cue: %v", rec.cues[n-2:])
	}
	if g.Background() != Palette[1] {
		t.Errorf("background = %v", g.Background())
	}
	if want := s.Gravity * g.Tuning().PointsPerMeter; g.world.Gravity[1] != want {
		t.Errorf("world gravity = %v, want %v", g.world.Gravity[1], want)
	}
	if l, _ := g.Label(LabelLevel); l.Text != "Level: 2" {
		t.Errorf("level label = %q", l.Text)
	}
	if l, _ := g.Label(LabelScore); l.Text != "Score: 10" {
		t.Errorf("score label = %q", l.Text)
	}
	if got := g.spawner.Pending(); got != pending+1 {
		t.Errorf("pending timers = %d, want one more danger stream than %d", got, pending)
	}
	if g.Count(KindBall) != 1 {
		t.Errorf("caught balls not removed, %d left", g.Count(KindBall))
	}
}

func TestCatPenaltyKeepsLevel(t *testing.T) {
	g, rec := startedGame(t)
	for i := 0; i < 10; i++ {
		hit(g, KindBall)
	}
	hit(g, KindCat)
	hit(g, KindCat)

	s := g.Session()
	if s.Score != 8 || s.Level != 2 {
		t.Errorf("score=%d level=%d, want 8 and 2", s.Score, s.Level)
	}
	if rec.count(CuePenalty) != 2 {
		t.Errorf("penalty cues = %d", rec.count(CuePenalty))
	}
	if g.Count(KindCat) != 0 {
		t.Error("caught cat not removed")
	}
}

func TestScoreMayGoNegative(t *testing.T) {
	g, _ := startedGame(t)
	hit(g, KindCat)
	if s := g.Session(); s.Score != -1 || s.Level != 1 {
		t.Errorf("score=%d level=%d", s.Score, s.Level)
	}
	if l, _ := g.Label(LabelScore); l.Text != "Score: -1" {
		t.Errorf("score label = %q", l.Text)
	}
}

func TestUnmatchedContactIgnored(t *testing.T) {
	g, rec := startedGame(t)
	g.resolve(physics.Contact{
		A: &physics.Body{ID: 900, Category: CategoryBall},
		B: &physics.Body{ID: 901, Category: CategoryCat},
	})
	// 已经被移除的球
	g.resolve(physics.Contact{
		A: g.Player().Body,
		B: &physics.Body{ID: 902, Category: CategoryBall},
	})
	if s := g.Session(); s.Score != 0 || len(rec.cues) != 0 {
		t.Errorf("score=%d cues=%v", s.Score, rec.cues)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		a, b uint32
		want Outcome
	}{
		{CategoryPlayer, CategoryBall, OutcomeCatch},
		{CategoryBall, CategoryPlayer, OutcomeCatch},
		{CategoryCat, CategoryPlayer, OutcomePenalty},
		{CategoryPlayer, CategoryDangerDog, OutcomeCaught},
		{CategoryBall, CategoryCat, OutcomeNone},
		{CategoryPlayer, CategoryPlayer, OutcomeNone},
	}
	for _, c := range cases {
		if got := Classify(c.a, c.b); got != c.want {
			t.Errorf("Classify(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEntitiesExpire(t *testing.T) {
	g, _ := newTestGame(4)
	ball := g.spawn(KindBall, 50, 700)
	dog := g.spawn(KindDangerDog, 100, 700)
	bodies := g.world.Len()

	for i := 0; i < 49; i++ {
		g.Update(100 * time.Millisecond)
	}
	if g.entities[ball.ID] != ball {
		t.Fatal("ball removed before its lifetime")
	}
	for i := 0; i < 2; i++ {
		g.Update(100 * time.Millisecond)
	}
	if _, ok := g.entities[ball.ID]; ok {
		t.Error("ball still alive after 5s")
	}
	if g.entities[dog.ID] != dog {
		t.Error("danger dog removed before 6s")
	}
	if g.world.Len() != bodies-1 {
		t.Errorf("world bodies = %d, want %d", g.world.Len(), bodies-1)
	}

	for i := 0; i < 10; i++ {
		g.Update(100 * time.Millisecond)
	}
	if _, ok := g.entities[dog.ID]; ok {
		t.Error("danger dog still alive after 6s")
	}
}

func TestGameOverSequence(t *testing.T) {
	g, rec := startedGame(t)
	for i := 0; i < 3; i++ {
		hit(g, KindBall)
	}
	for _, x := range []float64{40, 60, 80} {
		g.spawn(KindBall, x, 700)
	}
	g.spawn(KindCat, 350, 700)
	g.spawn(KindCat, 330, 700)

	hit(g, KindDangerDog)
	if !g.Ending() || g.Mode() != config.ModePlaying {
		t.Fatalf("ending=%v mode=%v right after the hit", g.Ending(), g.Mode())
	}
	if rec.cues[len(rec.cues)-1] != CueGameOver {
		t.Errorf("last cue = %v", rec.cues[len(rec.cues)-1])
	}
	for _, k := range []Kind{KindBall, KindCat, KindDangerDog} {
		if n := g.Count(k); n != 0 {
			t.Errorf("%d %v left on screen", n, k)
		}
	}
	if g.Count(KindCaughtDog) != 1 {
		t.Fatalf("caught dogs = %d", g.Count(KindCaughtDog))
	}
	if g.spawner.Pending() != 0 {
		t.Errorf("%d spawn timers still armed", g.spawner.Pending())
	}
	if !g.Player().Hidden {
		t.Error("player still visible")
	}

	before := g.Player().Pos
	g.Press(20, 20)
	if g.Mode() != config.ModePlaying || g.Player().Pos != before {
		t.Error("press during the ending was not ignored")
	}

	runFor(g, 4*time.Second)
	if g.Mode() != config.ModeGameOver || g.Ending() {
		t.Fatalf("mode=%v ending=%v after the animation", g.Mode(), g.Ending())
	}
	var dog *Entity
	for _, e := range g.Entities() {
		if e.Kind == KindCaughtDog {
			dog = e
		}
	}
	if dog == nil {
		t.Fatal("caught dog gone before restart")
	}
	if math.Abs(dog.Pos[0]-195) > 1e-9 || math.Abs(dog.Pos[1]-422) > 1e-9 {
		t.Errorf("caught dog at %v, want screen centre", dog.Pos)
	}
	if math.Abs(dog.Rotation-8*math.Pi) > 1e-6 {
		t.Errorf("rotation = %v", dog.Rotation)
	}
	if want := 844 * 1.2 / 155; math.Abs(dog.Scale-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", dog.Scale, want)
	}
	if l, ok := g.Label(LabelFinalScore); !ok || l.Text != "Final Score: 3" {
		t.Errorf("final score label = %+v", l)
	}
	for _, name := range []string{LabelGameOver, LabelRestart} {
		if _, ok := g.Label(name); !ok {
			t.Errorf("label %q missing", name)
		}
	}
	if g.Count(KindBall) != 0 {
		t.Error("balls spawned during game over")
	}
}

func TestRestartRestoresDefaults(t *testing.T) {
	g, _ := startedGame(t)
	for i := 0; i < 25; i++ {
		hit(g, KindBall)
	}
	g.Drag(100, 400)
	hit(g, KindDangerDog)
	runFor(g, 4*time.Second)
	if g.Mode() != config.ModeGameOver {
		t.Fatalf("mode = %v", g.Mode())
	}

	g.Press(0, 0)
	if g.Mode() != config.ModePlaying || g.Ending() {
		t.Fatalf("mode=%v ending=%v after restart", g.Mode(), g.Ending())
	}

	s := g.Session()
	if s.Score != 0 || s.Level != 1 || s.Gravity != -2.0 {
		t.Errorf("score=%d level=%d gravity=%v", s.Score, s.Level, s.Gravity)
	}
	rhythm := []struct {
		name      string
		got, want time.Duration
	}{
		{"BallSpawnMin", s.BallSpawnMin, 1200 * time.Millisecond},
		{"BallSpawnMax", s.BallSpawnMax, 2 * time.Second},
		{"CatSpawnMin", s.CatSpawnMin, 2500 * time.Millisecond},
		{"CatSpawnMax", s.CatSpawnMax, 4 * time.Second},
		{"MinimumSpawnGap", s.MinimumSpawnGap, 800 * time.Millisecond},
	}
	for _, r := range rhythm {
		if r.got != r.want {
			t.Errorf("%s = %v after restart, want %v", r.name, r.got, r.want)
		}
	}
	if g.world.Gravity[1] != -2.0*150 {
		t.Errorf("world gravity = %v after restart", g.world.Gravity[1])
	}
	if p := g.Player().Pos; p[0] != 195 || p[1] != 200 {
		t.Errorf("player at %v after restart, want (195, 200)", p)
	}
	if !s.Started {
		t.Error("session not started")
	}
	if g.Background() != Palette[0] {
		t.Error("background not reset")
	}
	if g.Count(KindCaughtDog) != 0 {
		t.Error("caught dog left after restart")
	}
	for _, name := range []string{LabelGameOver, LabelFinalScore, LabelRestart} {
		if _, ok := g.Label(name); ok {
			t.Errorf("label %q left after restart", name)
		}
	}
	if g.Player().Hidden {
		t.Error("player hidden after restart")
	}
	if l, _ := g.Label(LabelLevel); l.Hidden || l.Text != "Level: 1" {
		t.Errorf("level label = %+v", l)
	}
	// 球立即生成，猫稍后，危险狗等下一次升级
	if g.Count(KindBall) != 1 || g.spawner.Pending() != 2 {
		t.Errorf("balls=%d pending=%d", g.Count(KindBall), g.spawner.Pending())
	}
}

func TestDrawOrder(t *testing.T) {
	g, _ := startedGame(t)
	hit(g, KindBall)
	last := math.MinInt
	for _, e := range g.Entities() {
		if e.Z < last {
			t.Fatalf("entities out of z order")
		}
		last = e.Z
	}
}
