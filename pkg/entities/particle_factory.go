package entities

import (
	"image/color"
	"math/rand/v2"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
)

// NewParticleBurst 在指定位置生成一组碎屑粒子
//
// Parameters:
//   - em: EntityManager instance
//   - rng: 随机数源，决定每个粒子的速度
//   - x, y: 爆发中心（砖块中心）
//   - count: 粒子数量
//   - spread: 速度范围，每个分量取 (-spread/2, spread/2)
//   - clr: 粒子颜色（砖块原始颜色）
//
// Returns: 创建的粒子实体ID
func NewParticleBurst(em *ecs.EntityManager, rng *rand.Rand, x, y float64, count int, spread float64, clr color.RGBA) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
		em.AddComponent(id, &components.VelocityComponent{
			VX: (rng.Float64() - 0.5) * spread,
			VY: (rng.Float64() - 0.5) * spread,
		})
		em.AddComponent(id, &components.ParticleComponent{Life: 1, Color: clr})
		ids = append(ids, id)
	}
	return ids
}
