package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
)

func TestParticleSystemMovesAndFades(t *testing.T) {
	w, _ := newTestWorld(t, newTestConfig())
	ids := entities.NewParticleBurst(w.EntityManager, w.Rand, 500, 500, 4, 30, color.RGBA{R: 0xff, A: 0xff})

	type start struct{ x, y, vx, vy float64 }
	before := make([]start, len(ids))
	for i, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.EntityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](w.EntityManager, id)
		before[i] = start{pos.X, pos.Y, vel.VX, vel.VY}
	}

	NewParticleSystem(w).Update()

	for i, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.EntityManager, id)
		p, _ := ecs.GetComponent[*components.ParticleComponent](w.EntityManager, id)
		if pos.X != before[i].x+before[i].vx || pos.Y != before[i].y+before[i].vy {
			t.Errorf("Particle %d did not move by its velocity", i)
		}
		if want := 1 - w.Config.Particle.Decay; p.Life != want {
			t.Errorf("Particle %d: expected life %v, got %v", i, want, p.Life)
		}
	}
}

// TestParticlesExpire 生命耗尽的粒子在帧末被清理
func TestParticlesExpire(t *testing.T) {
	w, _ := newTestWorld(t, newTestConfig())
	entities.NewParticleBurst(w.EntityManager, w.Rand, 500, 500, 10, 30, color.RGBA{A: 0xff})
	ps := NewParticleSystem(w)

	frames := int(1/w.Config.Particle.Decay) + 2
	for i := 0; i < frames; i++ {
		ps.Update()
		w.EntityManager.RemoveMarkedEntities()
	}

	if n := countEntities[*components.ParticleComponent](w.EntityManager); n != 0 {
		t.Errorf("Expected all particles expired after %d frames, got %d", frames, n)
	}
}
