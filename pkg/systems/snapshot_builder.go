package systems

import (
	"math"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/game"
)

// BuildSnapshot 从 World 复制出一帧的渲染数据
//
// 只读：不修改任何组件。返回值中的切片都是新分配的。
func BuildSnapshot(w *game.World) game.Snapshot {
	cfg := w.Config
	em := w.EntityManager
	arena := cfg.Arena

	snap := game.Snapshot{
		ArenaWidth:  arena.Width,
		ArenaHeight: arena.Height,
		Walls: []game.Rect{
			{X: 0, Y: 0, W: arena.WallInset, H: arena.Height},
			{X: 0, Y: 0, W: arena.Width, H: arena.WallInset},
			{X: arena.Width - arena.WallInset, Y: 0, W: arena.WallInset, H: arena.Height},
		},
		Paddle: game.PaddleView{
			Rect: game.Rect{X: w.PaddleX, Y: cfg.PaddleY(), W: w.PaddleWidth(), H: cfg.Paddle.Height},
			Tint: w.Status.PaddleTint(),
		},
		Shake: w.Shake,
	}
	if w.Status.FloorShield() {
		snap.ShieldY = cfg.ShieldY()
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BrickComponent, *components.PositionComponent](em) {
		brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
		if !brick.Active {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Bricks = append(snap.Bricks, game.BrickView{
			Rect:    game.Rect{X: pos.X, Y: pos.Y, W: brick.Width, H: brick.Height},
			Color:   brick.Color,
			Variant: brick.Variant,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Particles = append(snap.Particles, game.ParticleView{
			X: pos.X, Y: pos.Y, Size: cfg.Particle.Size, Alpha: p.Life, Color: p.Color,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PickupComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.PickupComponent](em, id)
		if !p.Active || em.IsMarkedForDestruction(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Pickups = append(snap.Pickups, game.PickupView{
			Rect:  game.Rect{X: pos.X, Y: pos.Y, W: cfg.Pickup.Width, H: cfg.Pickup.Height},
			Kind:  p.Kind,
			Label: p.Kind.Label(),
			Color: p.Kind.Color(),
		})
	}

	tint := w.Status.BallTint()
	resting := false
	for _, id := range ecs.GetEntitiesWith2[*components.BallComponent, *components.PositionComponent](em) {
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
		if !ball.Active {
			continue
		}
		resting = resting || ball.Resting
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		trail := make([]components.Point, len(ball.Trail))
		copy(trail, ball.Trail)
		snap.Balls = append(snap.Balls, game.BallView{
			X: pos.X, Y: pos.Y, Radius: cfg.Ball.Radius, Trail: trail, Tint: tint,
		})
	}

	s := w.Session
	items := make([]game.ItemView, len(s.ItemLog))
	for i, kind := range s.ItemLog {
		items[i] = game.ItemView{Label: kind.Label(), Color: kind.Color()}
	}
	snap.HUD = game.HUD{
		Stage:     s.Stage,
		Score:     s.Score,
		HighScore: s.HighScore,
		Lives:     s.Lives,
		Combo:     s.Combo - 1,
		Speed:     int(math.Round(w.MaxBallSpeed * 10)),
		Items:     items,
		Phase:     s.Phase,
		Shield:    w.Status.FloorShield(),
		Resting:   resting,
	}

	return snap
}
