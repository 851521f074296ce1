package systems

import (
	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/game"
)

// ParticleSystem 推进砖块碎屑粒子
//
// 每帧：位置加上速度，生命值衰减，生命值耗尽的粒子标记删除（帧末统一清理）。
type ParticleSystem struct {
	world *game.World
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(world *game.World) *ParticleSystem {
	return &ParticleSystem{world: world}
}

// Update 推进所有粒子一帧
func (ps *ParticleSystem) Update() {
	em := ps.world.EntityManager
	decay := ps.world.Config.Particle.Decay

	for _, id := range ecs.GetEntitiesWith3[
		*components.ParticleComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		particle, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		pos.X += vel.VX
		pos.Y += vel.VY
		particle.Life -= decay
		if particle.Life <= 0 {
			particle.Life = 0
			em.DestroyEntity(id)
		}
	}
}
