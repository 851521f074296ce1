package entities

import (
	"image/color"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
)

// BrickSpec 关卡生成器输出的单个砖块描述
type BrickSpec struct {
	X, Y          float64
	Width, Height float64
	Variant       components.BrickVariant
	Color         color.RGBA
}

// NewBrickEntity 按描述创建砖块实体，耐久取该种类的初始值
func NewBrickEntity(em *ecs.EntityManager, spec BrickSpec) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	em.AddComponent(id, &components.BrickComponent{
		Width:         spec.Width,
		Height:        spec.Height,
		Variant:       spec.Variant,
		HitPoints:     spec.Variant.InitialHitPoints(),
		Active:        true,
		Color:         spec.Color,
		OriginalColor: spec.Color,
	})
	return id
}
