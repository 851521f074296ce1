package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/game"
)

// speakerCueSink 通过 beep speaker 直接播放合成音效
// 初始化失败时静默降级
type speakerCueSink struct {
	enabled    bool
	muted      atomic.Bool
	sampleRate int
	volume     float64
}

func newSpeakerCueSink(cfg config.AudioConfig, muted bool) *speakerCueSink {
	s := &speakerCueSink{sampleRate: cfg.SampleRate, volume: cfg.Volume}
	s.muted.Store(muted)
	if !cfg.Enabled {
		return s
	}

	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		log.Printf("[TUI] Audio initialization failed: %v", err)
		return s
	}
	s.enabled = true
	return s
}

// Emit 实现 game.CueSink
func (s *speakerCueSink) Emit(cue game.Cue) {
	if !s.enabled || s.muted.Load() {
		return
	}
	streamer, ok := game.CueStreamer(cue, s.sampleRate, s.volume)
	if !ok {
		return
	}
	speaker.Play(streamer)
}

func (s *speakerCueSink) toggleMute() {
	s.muted.Store(!s.muted.Load())
}

func (s *speakerCueSink) close() {
	if s.enabled {
		speaker.Close()
	}
}
