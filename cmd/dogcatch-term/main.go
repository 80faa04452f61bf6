package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"dog-tennis-catch/content/config"
	"dog-tennis-catch/content/game"
	"dog-tennis-catch/content/sound"
)

// 终端版：鼠标点击拖动，方向键微调，空格开始或重开，Esc 退出
const (
	frame = 16 * time.Millisecond
	nudge = 20.0 // 每次方向键移动的世界单位
)

var (
	configPath = flag.String("config", "", "TOML tuning file, empty for defaults")
	seed       = flag.Int64("seed", 0, "random seed, 0 uses the current time")
	logPath    = flag.String("log", "", "write logs to this file instead of discarding them")
	mute       = flag.Bool("mute", false, "disable sound")
)

type Term struct {
	screen tcell.Screen
	g      *game.Game
	cues   game.CuePlayer

	width, height int
	pressed       bool
}

func NewTerm(t config.Tuning, rng *rand.Rand) (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	term := &Term{screen: screen}
	term.width, term.height = screen.Size()

	term.cues = game.SilentCues{}
	if !*mute {
		term.cues = sound.Open(sound.Speaker)
	}

	term.g = game.New(t, term.cues, rng)
	return term, nil
}

// toWorld 格子中心对应的世界坐标
func (t *Term) toWorld(cx, cy int) (float64, float64) {
	tu := t.g.Tuning()
	x := (float64(cx) + 0.5) / float64(t.width) * tu.Width
	y := tu.Height - (float64(cy)+0.5)/float64(t.height)*tu.Height
	return x, y
}

func (t *Term) toCell(x, y float64) (int, int) {
	tu := t.g.Tuning()
	cx := int(math.Floor(x / tu.Width * float64(t.width)))
	cy := int(math.Floor((tu.Height - y) / tu.Height * float64(t.height)))
	return cx, cy
}

func (t *Term) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.nudge(-nudge, 0)
		case tcell.KeyRight:
			t.nudge(nudge, 0)
		case tcell.KeyUp:
			t.nudge(0, nudge)
		case tcell.KeyDown:
			t.nudge(0, -nudge)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				if t.g.Mode() != config.ModePlaying {
					t.g.Press(0, 0)
				}
			case 'q':
				return false
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 == 0 {
			t.pressed = false
			break
		}
		wx, wy := t.toWorld(x, y)
		if t.pressed {
			t.g.Drag(wx, wy)
		} else {
			t.pressed = true
			t.g.Press(wx, wy)
		}

	case *tcell.EventResize:
		t.width, t.height = t.screen.Size()
		t.screen.Sync()
	}
	return true
}

func (t *Term) nudge(dx, dy float64) {
	p := t.g.Player()
	if p == nil || t.g.Mode() != config.ModePlaying {
		return
	}
	t.g.Drag(p.Pos[0]+dx, p.Pos[1]+dy)
}

func rgb(c interface{ RGBA() (r, g, b, a uint32) }) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

var glyphs = map[game.Kind]struct {
	r     rune
	color tcell.Color
}{
	game.KindPlayer:    {'D', tcell.NewRGBColor(0xa0, 0x6a, 0x3c)},
	game.KindBall:      {'o', tcell.NewRGBColor(0xd4, 0xe1, 0x57)},
	game.KindIntroBall: {'o', tcell.NewRGBColor(0xd4, 0xe1, 0x57)},
	game.KindCat:       {'c', tcell.NewRGBColor(0x9e, 0x9e, 0x9e)},
	game.KindDangerDog: {'X', tcell.NewRGBColor(0xc6, 0x28, 0x28)},
	game.KindCaughtDog: {'X', tcell.NewRGBColor(0xc6, 0x28, 0x28)},
	game.KindIntroLogo: {'#', tcell.ColorWhite},
}

func (t *Term) draw() {
	bg := tcell.StyleDefault.Background(rgb(t.g.Background()))
	t.screen.SetStyle(bg)
	t.screen.Clear()
	tu := t.g.Tuning()

	for _, e := range t.g.Entities() {
		if e.Hidden || e.Alpha <= 0 {
			continue
		}
		gl, ok := glyphs[e.Kind]
		if !ok {
			continue
		}
		// 实体至少占一个格子
		w := max(1, int(e.Size[0]*e.Scale/tu.Width*float64(t.width)))
		h := max(1, int(e.Size[1]*e.Scale/tu.Height*float64(t.height)))
		cx, cy := t.toCell(e.Pos[0], e.Pos[1])
		style := bg.Foreground(gl.color)
		for y := cy - h/2; y < cy-h/2+h; y++ {
			for x := cx - w/2; x < cx-w/2+w; x++ {
				if x >= 0 && y >= 0 && x < t.width && y < t.height {
					t.screen.SetContent(x, y, gl.r, nil, style)
				}
			}
		}
	}

	for _, l := range t.g.Labels() {
		if l.Hidden || l.Alpha < 0.5 {
			continue
		}
		cx, cy := t.toCell(l.Pos[0], l.Pos[1])
		style := bg.Foreground(rgb(l.Color)).Bold(true)
		runes := []rune(l.Text)
		start := cx - len(runes)/2
		for i, r := range runes {
			if x := start + i; x >= 0 && x < t.width && cy >= 0 && cy < t.height {
				t.screen.SetContent(x, cy, r, nil, style)
			}
		}
	}

	t.screen.Show()
}

func (t *Term) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			t.g.Update(now.Sub(last))
			last = now
			t.draw()
		}
	}
}

func (t *Term) cleanup() {
	sound.Close(t.cues)
	t.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	tuning, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	term, err := NewTerm(tuning, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer term.cleanup()

	term.run()
}
