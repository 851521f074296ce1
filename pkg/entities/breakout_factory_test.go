package entities

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
)

func TestNewRestingBallEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewRestingBallEntity(em, 1000, 1338)

	ball, ok := ecs.GetComponent[*components.BallComponent](em, id)
	if !ok {
		t.Fatal("Expected BallComponent")
	}
	if !ball.Resting || !ball.Active {
		t.Errorf("Expected resting active ball, got resting=%v active=%v", ball.Resting, ball.Active)
	}

	vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id)
	if !ok {
		t.Fatal("Expected VelocityComponent")
	}
	if vel.VX != 0 || vel.VY != 0 {
		t.Errorf("Resting ball must have zero velocity, got (%.2f, %.2f)", vel.VX, vel.VY)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 1000 || pos.Y != 1338 {
		t.Errorf("Expected position (1000, 1338), got (%.1f, %.1f)", pos.X, pos.Y)
	}
}

func TestNewMovingBallEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewMovingBallEntity(em, 10, 20, 3, -4)

	ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
	if ball.Resting {
		t.Error("Split ball must not be resting")
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VX != 3 || vel.VY != -4 {
		t.Errorf("Expected velocity (3, -4), got (%.1f, %.1f)", vel.VX, vel.VY)
	}
}

func TestNewBrickEntityHitPoints(t *testing.T) {
	tests := []struct {
		variant components.BrickVariant
		wantHP  int
	}{
		{components.BrickNormal, 1},
		{components.BrickReinforced, 3},
		{components.BrickBonus, 1},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			em := ecs.NewEntityManager()
			red := color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
			id := NewBrickEntity(em, BrickSpec{X: 5, Y: 6, Width: 80, Height: 45, Variant: tt.variant, Color: red})

			brick, ok := ecs.GetComponent[*components.BrickComponent](em, id)
			if !ok {
				t.Fatal("Expected BrickComponent")
			}
			if brick.HitPoints != tt.wantHP {
				t.Errorf("Expected HP %d, got %d", tt.wantHP, brick.HitPoints)
			}
			if !brick.Active {
				t.Error("New brick must be active")
			}
			if brick.Color != red || brick.OriginalColor != red {
				t.Errorf("Expected both colors %v, got %v / %v", red, brick.Color, brick.OriginalColor)
			}
		})
	}
}

func TestNewParticleBurst(t *testing.T) {
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewPCG(1, 2))
	clr := color.RGBA{R: 1, G: 2, B: 3, A: 255}

	ids := NewParticleBurst(em, rng, 100, 200, 10, 30, clr)
	if len(ids) != 10 {
		t.Fatalf("Expected 10 particles, got %d", len(ids))
	}

	for _, id := range ids {
		p, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
		if !ok {
			t.Fatal("Expected ParticleComponent")
		}
		if p.Life != 1 || p.Color != clr {
			t.Errorf("Expected life 1 and color %v, got %.2f %v", clr, p.Life, p.Color)
		}
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		if vel.VX < -15 || vel.VX >= 15 || vel.VY < -15 || vel.VY >= 15 {
			t.Errorf("Particle velocity out of spread: (%.2f, %.2f)", vel.VX, vel.VY)
		}
	}
}

func TestNewPickupEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewPickupEntity(em, 300, 400, components.PowerUpFloorShield)

	p, ok := ecs.GetComponent[*components.PickupComponent](em, id)
	if !ok {
		t.Fatal("Expected PickupComponent")
	}
	if p.Kind != components.PowerUpFloorShield || !p.Active {
		t.Errorf("Unexpected pickup %+v", p)
	}
}
