package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// waveType 振荡器波形
type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveTriangle
	waveSaw
)

// tone 单音效参数
type tone struct {
	freq     float64
	wave     waveType
	duration time.Duration
	volume   float64
}

// note 旋律中的一个音符
type note struct {
	freq     float64
	duration time.Duration
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// 旋律统一使用方波，音量从 melodyVolume 指数衰减
const (
	melodyVolume = 0.04
	melodyFloor  = 0.001
	// toneSweepRatio 单音效结束时频率相对起始频率的比例
	toneSweepRatio = 0.1
)

var (
	melodyIntro = []note{
		{440, ms(100)}, {554, ms(100)}, {659, ms(100)}, {880, ms(300)}, {659, ms(100)}, {880, ms(400)},
	}
	melodyStageClear = []note{
		{523, ms(100)}, {587, ms(100)}, {659, ms(100)}, {698, ms(100)},
		{783, ms(100)}, {880, ms(100)}, {987, ms(100)}, {1046, ms(400)},
	}
	melodyLifeLost = []note{
		{440, ms(150)}, {415, ms(150)}, {392, ms(150)}, {349, ms(400)},
	}
	melodyGameOver = []note{
		{349, ms(200)}, {311, ms(200)}, {277, ms(200)}, {233, ms(600)},
	}
)

// toneFor 返回单音效提示的参数
// 旋律类提示返回 false
func toneFor(cue Cue) (tone, bool) {
	switch cue.Kind {
	case CueWall:
		return tone{200, waveSine, ms(50), 0.05}, true
	case CuePaddle:
		return tone{440, waveTriangle, ms(100), 0.05}, true
	case CueShield:
		return tone{150, waveSine, ms(100), 0.05}, true
	case CueBrickHit:
		return tone{300 + float64(3-cue.Param)*100, waveSaw, ms(100), 0.05}, true
	case CueBrickBreak:
		return tone{800, waveSquare, ms(150), 0.05}, true
	case CuePickup:
		return tone{1000, waveSine, ms(400), 0.1}, true
	case CueLaunch:
		return tone{600, waveSine, ms(100), 0.1}, true
	case CueIntro, CueStageClear, CueLifeLost, CueGameOver:
		return tone{}, false
	}
	return tone{}, false
}

// melodyFor 返回旋律类提示的音符序列
func melodyFor(kind CueKind) ([]note, bool) {
	switch kind {
	case CueIntro:
		return melodyIntro, true
	case CueStageClear:
		return melodyStageClear, true
	case CueLifeLost:
		return melodyLifeLost, true
	case CueGameOver:
		return melodyGameOver, true
	}
	return nil, false
}

// oscillator 波形发生器，频率从 freq 按指数曲线滑向 freq*sweep
type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
}

func newOscillator(freq, sweep float64, duration time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case waveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case waveSaw:
			val = 2 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.sweep != 1 && o.duration > 0 {
			freq *= math.Pow(o.sweep, float64(o.position)/float64(o.duration))
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 增益包络
// linear 为 true 时从 start 线性降到 0，否则从 start 指数衰减到 floor
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	start    float64
	floor    float64
	linear   bool
}

func newLinearRelease(s beep.Streamer, duration time.Duration, start float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{streamer: s, total: rate.N(duration), start: start, linear: true}
}

func newExpDecay(s beep.Streamer, duration time.Duration, start, floor float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{streamer: s, total: rate.N(duration), start: start, floor: floor}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := 1.0
		if e.total > 0 {
			t = float64(e.position) / float64(e.total)
		}
		if t > 1 {
			t = 1
		}
		var gain float64
		if e.linear {
			gain = e.start * (1 - t)
		} else {
			gain = e.start * math.Pow(e.floor/e.start, t)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume 主音量，0 表示静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// cueStreamer 把提示合成为音频流
//
// 参数：
//   - cue: 音效提示
//   - rate: 采样率
//   - master: 主音量 (0..1)
func cueStreamer(cue Cue, rate beep.SampleRate, master float64) (beep.Streamer, bool) {
	if notes, ok := melodyFor(cue.Kind); ok {
		parts := make([]beep.Streamer, 0, len(notes))
		for _, n := range notes {
			osc := newOscillator(n.freq, 1, n.duration, waveSquare, rate)
			parts = append(parts, newExpDecay(osc, n.duration, melodyVolume, melodyFloor, rate))
		}
		return newVolume(beep.Seq(parts...), master), true
	}

	t, ok := toneFor(cue)
	if !ok {
		return nil, false
	}
	osc := newOscillator(t.freq, toneSweepRatio, t.duration, t.wave, rate)
	return newVolume(newLinearRelease(osc, t.duration, t.volume, rate), master), true
}

// renderPCM 把音频流渲染为 16 位小端立体声 PCM（ebiten audio 的格式）
func renderPCM(s beep.Streamer) []byte {
	const chunk = 512
	buf := make([][2]float64, chunk)
	out := make([]byte, 0, chunk*4)
	var frame [4]byte
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			l := clampSample(buf[i][0])
			r := clampSample(buf[i][1])
			binary.LittleEndian.PutUint16(frame[0:], uint16(l))
			binary.LittleEndian.PutUint16(frame[2:], uint16(r))
			out = append(out, frame[:]...)
		}
		if !ok || n < chunk {
			return out
		}
	}
}

func clampSample(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

// SynthesizeCue 把提示渲染为 PCM 字节
// 返回 nil 表示该提示没有对应声音
func SynthesizeCue(cue Cue, sampleRate int, master float64) []byte {
	s, ok := cueStreamer(cue, beep.SampleRate(sampleRate), master)
	if !ok {
		return nil
	}
	return renderPCM(s)
}

// CueStreamer 返回提示对应的音频流
// 供直接驱动 beep speaker 的宿主（终端版）使用
func CueStreamer(cue Cue, sampleRate int, master float64) (beep.Streamer, bool) {
	return cueStreamer(cue, beep.SampleRate(sampleRate), master)
}
