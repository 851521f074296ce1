package entities

import (
	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
)

// NewPickupEntity 在砖块位置生成一个下落的道具
//
// 参数:
//   - em: EntityManager 实例
//   - x, y: 道具左上角（取被击碎砖块的左上角）
//   - kind: 道具种类
//
// 返回: 创建的实体ID
func NewPickupEntity(em *ecs.EntityManager, x, y float64, kind components.PowerUpKind) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.PickupComponent{Kind: kind, Active: true})
	return id
}
