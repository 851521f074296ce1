package game

import (
	"testing"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/config"
)

func newTestStatus() (*StatusController, *Session, *config.BreakoutConfig) {
	cfg := config.DefaultBreakoutConfig()
	session := NewSession(cfg.Session.ItemLogLength, 0)
	session.Lives = 3
	return NewStatusController(cfg, session), session, cfg
}

func TestEffectivePaddleWidth(t *testing.T) {
	tests := []struct {
		name   string
		widen  int
		narrow int
		want   float64
	}{
		{"base", 0, 0, 300},
		{"widen", 10, 0, 450},
		{"narrow", 0, 10, 150},
		{"widen wins over narrow", 10, 10, 450},
		{"widen wins even when shorter", 1, 449, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _, _ := newTestStatus()
			sc.Timers.Widen = tt.widen
			sc.Timers.Narrow = tt.narrow
			if got := sc.EffectivePaddleWidth(); got != tt.want {
				t.Errorf("Expected width %.1f, got %.1f", tt.want, got)
			}
		})
	}
}

// TestEffectivePaddleWidthAlwaysAllowed 任意计时器组合下，宽度只可能是三个值之一
func TestEffectivePaddleWidthAlwaysAllowed(t *testing.T) {
	sc, _, cfg := newTestStatus()
	allowed := map[float64]bool{
		cfg.Paddle.BaseWidth:                           true,
		cfg.Paddle.BaseWidth * cfg.Paddle.WidenFactor:  true,
		cfg.Paddle.BaseWidth * cfg.Paddle.NarrowFactor: true,
	}

	for widen := 0; widen < 4; widen++ {
		for narrow := 0; narrow < 4; narrow++ {
			sc.Timers.Widen = widen
			sc.Timers.Narrow = narrow
			for step := 0; step < 5; step++ {
				if w := sc.EffectivePaddleWidth(); !allowed[w] {
					t.Fatalf("widen=%d narrow=%d step=%d: unexpected width %.2f", widen, narrow, step, w)
				}
				sc.Tick()
			}
		}
	}
}

func TestApplyPickup(t *testing.T) {
	sc, session, cfg := newTestStatus()

	sc.ApplyPickup(components.PowerUpExtraLife)
	if session.Lives != 4 {
		t.Errorf("Expected 4 lives after extra life, got %d", session.Lives)
	}

	sc.ApplyPickup(components.PowerUpSlowTime)
	if sc.SpeedMultiplier != cfg.Effects.SlowMultiplier {
		t.Errorf("Expected slow multiplier %.2f, got %.2f", cfg.Effects.SlowMultiplier, sc.SpeedMultiplier)
	}
	sc.ApplyPickup(components.PowerUpSpeedTime)
	if sc.SpeedMultiplier != cfg.Effects.SpeedMultiplier {
		t.Errorf("Speed pickup should overwrite slow, got %.2f", sc.SpeedMultiplier)
	}

	for _, kind := range components.AllPowerUpKinds() {
		if !kind.IsTimed() {
			continue
		}
		sc.ApplyPickup(kind)
		if !sc.Active(kind) {
			t.Errorf("%s should be active after pickup", kind)
		}
	}
	if sc.Timers.FloorShield != cfg.Effects.DurationFrames {
		t.Errorf("Expected shield timer %d, got %d", cfg.Effects.DurationFrames, sc.Timers.FloorShield)
	}
}

// TestApplyPickupRestartsTimer 重复拾取只重置计时，不叠加
func TestApplyPickupRestartsTimer(t *testing.T) {
	sc, _, cfg := newTestStatus()
	sc.ApplyPickup(components.PowerUpPassThrough)
	for i := 0; i < 100; i++ {
		sc.Tick()
	}
	sc.ApplyPickup(components.PowerUpPassThrough)
	if sc.Timers.PassThrough != cfg.Effects.DurationFrames {
		t.Errorf("Expected timer reset to %d, got %d", cfg.Effects.DurationFrames, sc.Timers.PassThrough)
	}
}

func TestTickStopsAtZero(t *testing.T) {
	sc, _, _ := newTestStatus()
	sc.Timers.MultiBall = 2
	sc.Tick()
	sc.Tick()
	sc.Tick()
	if sc.Timers.MultiBall != 0 {
		t.Errorf("Timer must not go negative, got %d", sc.Timers.MultiBall)
	}
	if sc.MultiBall() {
		t.Error("MultiBall should have expired")
	}
}

func TestResetAndResetSpeed(t *testing.T) {
	sc, _, _ := newTestStatus()
	sc.ApplyPickup(components.PowerUpWiden)
	sc.ApplyPickup(components.PowerUpSlowTime)

	sc.ResetSpeed()
	if sc.SpeedMultiplier != 1 {
		t.Errorf("Expected multiplier 1 after ResetSpeed, got %.2f", sc.SpeedMultiplier)
	}
	if sc.Timers.Widen == 0 {
		t.Error("ResetSpeed must not touch timers")
	}

	sc.Reset()
	if sc.Timers != (StatusTimers{}) {
		t.Errorf("Expected zeroed timers, got %+v", sc.Timers)
	}
}

func TestTints(t *testing.T) {
	sc, _, _ := newTestStatus()

	if sc.BallTint() != colorBallDefault {
		t.Errorf("Expected default ball tint, got %v", sc.BallTint())
	}
	sc.Timers.MultiBall = 5
	if sc.BallTint() != components.PowerUpMultiBall.Color() {
		t.Errorf("Expected multi-ball tint, got %v", sc.BallTint())
	}
	sc.Timers.PassThrough = 5
	if sc.BallTint() != components.PowerUpPassThrough.Color() {
		t.Errorf("Pass-through tint should win, got %v", sc.BallTint())
	}

	if sc.PaddleTint() != colorPaddleDefault {
		t.Errorf("Expected default paddle tint, got %v", sc.PaddleTint())
	}
	sc.Timers.Narrow = 5
	if sc.PaddleTint() != components.PowerUpNarrow.Color() {
		t.Errorf("Expected narrow tint, got %v", sc.PaddleTint())
	}
	sc.Timers.Widen = 5
	if sc.PaddleTint() != components.PowerUpWiden.Color() {
		t.Errorf("Widen tint should follow widen width, got %v", sc.PaddleTint())
	}
}
