package game

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/tennisbreak/pkg/config"
)

func newTestWorld() *World {
	return NewWorld(config.DefaultBreakoutConfig(), rand.New(rand.NewPCG(1, 1)), nil, 0)
}

func TestNewWorldCentersPaddle(t *testing.T) {
	w := newTestWorld()
	if w.PaddleX != 850 {
		t.Errorf("Expected paddle at 850, got %.1f", w.PaddleX)
	}
	if w.PaddleCenterX() != 1000 {
		t.Errorf("Expected paddle centre at 1000, got %.1f", w.PaddleCenterX())
	}
	if _, ok := w.Cues.(NopCueSink); !ok {
		t.Errorf("Expected NopCueSink for nil sink, got %T", w.Cues)
	}
}

func TestMovePaddleToClamps(t *testing.T) {
	tests := []struct {
		name    string
		logical float64
		want    float64
	}{
		{"centre", 1000, 850},
		{"far left", -500, 50},
		{"far right", 5000, 2000 - 50 - 300},
		{"touching left wall", 200, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.MovePaddleTo(tt.logical)
			if w.PaddleX != tt.want {
				t.Errorf("Expected paddleX %.1f, got %.1f", tt.want, w.PaddleX)
			}
		})
	}
}

func TestClampPaddleAfterWiden(t *testing.T) {
	w := newTestWorld()
	w.MovePaddleTo(5000)
	w.Status.Timers.Widen = 10
	w.ClampPaddle()

	want := 2000 - 50 - 450.0
	if w.PaddleX != want {
		t.Errorf("Expected paddleX %.1f after widen, got %.1f", want, w.PaddleX)
	}
}

func TestShakeDecay(t *testing.T) {
	w := newTestWorld()
	w.SetShake(30)
	w.DecayShake()
	if w.Shake < 24.59 || w.Shake > 24.61 {
		t.Errorf("Expected 24.6 after one decay, got %.3f", w.Shake)
	}
	for i := 0; i < 200; i++ {
		w.DecayShake()
	}
	if w.Shake != 0 {
		t.Errorf("Expected shake to settle at 0, got %f", w.Shake)
	}
}

func TestCueRecorder(t *testing.T) {
	rec := &CueRecorder{}
	w := NewWorld(config.DefaultBreakoutConfig(), rand.New(rand.NewPCG(1, 1)), rec, 0)

	w.Emit(CueWall, 0)
	w.Emit(CueBrickHit, 2)
	w.Emit(CueWall, 0)

	if rec.Count(CueWall) != 2 {
		t.Errorf("Expected 2 wall cues, got %d", rec.Count(CueWall))
	}
	last, ok := rec.Last()
	if !ok || last.Kind != CueWall {
		t.Errorf("Unexpected last cue %+v", last)
	}
	rec.Reset()
	if _, ok := rec.Last(); ok {
		t.Error("Expected empty recorder after Reset")
	}
}
