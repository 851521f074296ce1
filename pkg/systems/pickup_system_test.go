package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/entities"
	"github.com/decker502/tennisbreak/pkg/game"
)

// TestPickupCaughtByPaddle 道具与球拍重叠时立即生效并记录
func TestPickupCaughtByPaddle(t *testing.T) {
	w, cues := newTestWorld(t, newTestConfig())
	entities.NewPickupEntity(w.EntityManager, w.PaddleX+10, w.Config.PaddleY()-55, components.PowerUpWiden)

	NewPickupSystem(w).Update()

	if !w.Status.Active(components.PowerUpWiden) {
		t.Error("Widen should be active after catching the pickup")
	}
	if len(w.Session.ItemLog) != 1 || w.Session.ItemLog[0] != components.PowerUpWiden {
		t.Errorf("Expected item log [LONG], got %v", w.Session.ItemLog)
	}
	if cues.Count(game.CuePickup) != 1 {
		t.Errorf("Expected one pickup cue, got %d", cues.Count(game.CuePickup))
	}

	w.EntityManager.RemoveMarkedEntities()
	if n := countEntities[*components.PickupComponent](w.EntityManager); n != 0 {
		t.Errorf("Caught pickup should be removed, got %d", n)
	}
}

// TestPickupExtraLife 加命道具立即加一条命
func TestPickupExtraLife(t *testing.T) {
	w, _ := newTestWorld(t, newTestConfig())
	lives := w.Session.Lives
	entities.NewPickupEntity(w.EntityManager, w.PaddleX+10, w.Config.PaddleY()-55, components.PowerUpExtraLife)

	NewPickupSystem(w).Update()

	if w.Session.Lives != lives+1 {
		t.Errorf("Expected %d lives, got %d", lives+1, w.Session.Lives)
	}
}

// TestPickupWidenClampsPaddle 贴墙时拾取加长，球拍仍在墙内
func TestPickupWidenClampsPaddle(t *testing.T) {
	w, _ := newTestWorld(t, newTestConfig())
	w.MovePaddleTo(w.Config.Arena.Width)
	entities.NewPickupEntity(w.EntityManager, w.PaddleX+10, w.Config.PaddleY()-55, components.PowerUpWiden)

	NewPickupSystem(w).Update()

	right := w.PaddleX + w.PaddleWidth()
	if limit := w.Config.Arena.Width - w.Config.Arena.WallInset; right > limit {
		t.Errorf("Paddle right edge %v beyond wall %v", right, limit)
	}
}

// TestPickupMissedFallsOut 未被接住的道具落出底部后移除，不产生效果
func TestPickupMissedFallsOut(t *testing.T) {
	w, cues := newTestWorld(t, newTestConfig())
	entities.NewPickupEntity(w.EntityManager, 100, w.Config.Arena.Height-5, components.PowerUpFloorShield)

	NewPickupSystem(w).Update()
	w.EntityManager.RemoveMarkedEntities()

	if n := countEntities[*components.PickupComponent](w.EntityManager); n != 0 {
		t.Errorf("Expected pickup removed, got %d", n)
	}
	if w.Status.FloorShield() {
		t.Error("Missed pickup must not apply")
	}
	if cues.Count(game.CuePickup) != 0 {
		t.Error("Missed pickup must not emit a cue")
	}
}

func TestPickupFalls(t *testing.T) {
	w, _ := newTestWorld(t, newTestConfig())
	id := entities.NewPickupEntity(w.EntityManager, 100, 300, components.PowerUpSlowTime)

	NewPickupSystem(w).Update()

	if pos := mustPosition(t, w, id); pos.Y != 300+w.Config.Pickup.FallSpeed {
		t.Errorf("Expected y=%v, got %v", 300+w.Config.Pickup.FallSpeed, pos.Y)
	}
}

// TestRollPickupKindDistribution 道具种类按固定权重分布
func TestRollPickupKindDistribution(t *testing.T) {
	const draws = 40000
	rng := rand.New(rand.NewPCG(7, 11))
	counts := make(map[components.PowerUpKind]int)
	for i := 0; i < draws; i++ {
		counts[RollPickupKind(rng)]++
	}

	want := map[components.PowerUpKind]float64{
		components.PowerUpExtraLife:   0.05,
		components.PowerUpNarrow:      0.07,
		components.PowerUpSlowTime:    0.10,
		components.PowerUpSpeedTime:   0.13,
		components.PowerUpMultiBall:   0.15,
		components.PowerUpWiden:       0.50 / 3,
		components.PowerUpPassThrough: 0.50 / 3,
		components.PowerUpFloorShield: 0.50 / 3,
	}
	for kind, p := range want {
		got := float64(counts[kind]) / draws
		if got < p-0.015 || got > p+0.015 {
			t.Errorf("%s: frequency %.3f, want about %.3f", kind, got, p)
		}
	}
}

func TestMaybeDropPickupRespectsChance(t *testing.T) {
	cfg := newTestConfig()
	cfg.Pickup.DropChance = 1
	w, _ := newTestWorld(t, cfg)

	maybeDropPickup(w, 400, 300)
	if n := countEntities[*components.PickupComponent](w.EntityManager); n != 1 {
		t.Errorf("Expected a pickup with drop chance 1, got %d", n)
	}

	w.Config.Pickup.DropChance = 0
	maybeDropPickup(w, 400, 300)
	if n := countEntities[*components.PickupComponent](w.EntityManager); n != 1 {
		t.Errorf("Expected no new pickup with drop chance 0, got %d", n)
	}
}
