package entities

import (
	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
)

// NewRestingBallEntity 创建一个停在球拍上等待发射的球
//
// 参数:
//   - em: EntityManager 实例
//   - x, y: 球心坐标（球拍中心上方一个半径处）
//
// 返回: 创建的实体ID
func NewRestingBallEntity(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, &components.BallComponent{
		Resting: true,
		Active:  true,
	})
	return id
}

// NewMovingBallEntity 创建一个运动中的球（多球分裂时使用）
func NewMovingBallEntity(em *ecs.EntityManager, x, y, vx, vy float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.BallComponent{Active: true})
	return id
}
