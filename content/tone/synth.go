package tone

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Tone 一段正弦音，Volume 为 [0,1] 的线性增益
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64
}

// Note 相对提示音开头偏移 Offset 播放的一个音
type Note struct {
	Offset time.Duration
	Tone   Tone
}

type Sequence []Note

// Length 从开头到最后一个音结束的时长
func (s Sequence) Length() time.Duration {
	var end time.Duration
	for _, n := range s {
		if e := n.Offset + n.Tone.Duration; e > end {
			end = e
		}
	}
	return end
}

// Synth 按固定采样率合成
type Synth struct {
	rate beep.SampleRate
}

func NewSynth(sampleRate int) *Synth {
	return &Synth{rate: beep.SampleRate(sampleRate)}
}

func (s *Synth) SampleRate() beep.SampleRate {
	return s.rate
}

// Tone 返回 t 的有限长度流，带线性淡出
func (s *Synth) Tone(t Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(s.rate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("sine %vHz: %w", t.Freq, err)
	}
	n := s.rate.N(t.Duration)
	shaped := &fadeOut{streamer: beep.Take(n, sine), total: n}
	return &effects.Gain{Streamer: shaped, Gain: t.Volume - 1}, nil
}

// Stream 把所有音按各自偏移混成一个流
func (s *Synth) Stream(seq Sequence) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(seq))
	for _, n := range seq {
		st, err := s.Tone(n.Tone)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Seq(beep.Silence(s.rate.N(n.Offset)), st))
	}
	return beep.Mix(parts...), nil
}

// PCM 16 位小端立体声
func (s *Synth) PCM(seq Sequence) ([]byte, error) {
	st, err := s.Stream(seq)
	if err != nil {
		return nil, err
	}
	return Render(st), nil
}

// Render 把有限长度的流读完，转成 16 位小端立体声
func Render(st beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := buf[i][ch]
				if v > 1 {
					v = 1
				} else if v < -1 {
					v = -1
				}
				sample := int16(v * 32767)
				out = append(out, byte(sample), byte(sample>>8))
			}
		}
		if !ok {
			return out
		}
	}
}

// fadeOut 在 total 个采样内把音量从 1 降到 0
type fadeOut struct {
	streamer beep.Streamer
	total    int
	pos      int
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		env := 1 - float64(f.pos)/float64(f.total)
		samples[i][0] *= env
		samples[i][1] *= env
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }
