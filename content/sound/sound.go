package sound

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"dog-tennis-catch/content/game"
	"dog-tennis-catch/content/tone"
)

const SampleRate = 44100

// Output 声音输出设备，默认是 beep 的 speaker
type Output struct {
	Init  func(sampleRate beep.SampleRate, bufferSize int) error
	Play  func(s ...beep.Streamer)
	Close func()
}

var Speaker = Output{Init: speaker.Init, Play: speaker.Play, Close: speaker.Close}

// Player 播放提示音，每种提示音只合成一次
type Player struct {
	out    Output
	synth  *tone.Synth
	format beep.Format
	cache  map[game.Cue]*beep.Buffer
	failed bool
}

// Open 初始化输出设备。失败时记录日志并返回静音的 game.SilentCues，游戏照常进行
func Open(out Output) game.CuePlayer {
	rate := beep.SampleRate(SampleRate)
	if err := out.Init(rate, rate.N(time.Second/10)); err != nil {
		log.Printf("audio init failed, running silent: %v", err)
		return game.SilentCues{}
	}
	p := &Player{
		out:    out,
		synth:  tone.NewSynth(SampleRate),
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		cache:  make(map[game.Cue]*beep.Buffer),
	}
	for _, c := range game.AllCues {
		p.load(c)
	}
	return p
}

func (p *Player) load(c game.Cue) *beep.Buffer {
	if buf, ok := p.cache[c]; ok {
		return buf
	}
	st, err := p.synth.Stream(c.Sequence())
	if err != nil {
		// 只记录一次，之后这个提示音静音
		if !p.failed {
			log.Printf("synth %v cue: %v", c, err)
			p.failed = true
		}
		return nil
	}
	buf := beep.NewBuffer(p.format)
	buf.Append(st)
	p.cache[c] = buf
	return buf
}

func (p *Player) PlayCue(c game.Cue) {
	buf := p.load(c)
	if buf == nil {
		return
	}
	p.out.Play(buf.Streamer(0, buf.Len()))
}

// Close 关闭输出设备，静音时什么也不做
func Close(cues game.CuePlayer) {
	if p, ok := cues.(*Player); ok && p.out.Close != nil {
		p.out.Close()
	}
}
