package systems

import (
	"log"
	"math/rand/v2"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
	"github.com/decker502/tennisbreak/pkg/game"
)

// PickupSystem 处理下落道具的移动和拾取
type PickupSystem struct {
	world *game.World
}

// NewPickupSystem 创建道具系统
func NewPickupSystem(world *game.World) *PickupSystem {
	return &PickupSystem{world: world}
}

// Update 道具下落一帧，与球拍重叠时拾取，落出竞技场底部时移除
//
// 碰撞使用当前帧的球拍有效宽度（计时器已在本帧递减）。
func (ps *PickupSystem) Update() {
	w := ps.world
	em := w.EntityManager
	cfg := w.Config

	for _, id := range ecs.GetEntitiesWith2[*components.PickupComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		pickup, _ := ecs.GetComponent[*components.PickupComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		pos.Y += cfg.Pickup.FallSpeed

		if pickup.Active && ps.overlapsPaddle(pos) {
			pickup.Active = false
			em.DestroyEntity(id)
			ps.collect(pickup.Kind)
			continue
		}

		if pos.Y > cfg.Arena.Height {
			em.DestroyEntity(id)
		}
	}
}

// overlapsPaddle 道具（按拾取宽度）是否与球拍重叠
func (ps *PickupSystem) overlapsPaddle(pos *components.PositionComponent) bool {
	w := ps.world
	cfg := w.Config
	paddleY := cfg.PaddleY()
	return pos.Y+cfg.Pickup.Height > paddleY &&
		pos.Y < paddleY+cfg.Paddle.Height &&
		pos.X+cfg.Pickup.CatchWidth > w.PaddleX &&
		pos.X < w.PaddleX+w.PaddleWidth()
}

// collect 应用道具效果并记录
func (ps *PickupSystem) collect(kind components.PowerUpKind) {
	w := ps.world
	w.Status.ApplyPickup(kind)
	w.Session.RecordItem(kind)
	w.ClampPaddle()
	w.Emit(game.CuePickup, 0)
	log.Printf("[PickupSystem] Collected %s", kind.Label())
}

// RollPickupKind 按固定权重随机选择道具种类
//
//	r < .05 加命, < .12 缩短, < .22 减速, < .35 加速, < .50 多球,
//	其余在 加长/穿透/护盾 中均匀选择
func RollPickupKind(rng *rand.Rand) components.PowerUpKind {
	r := rng.Float64()
	switch {
	case r < 0.05:
		return components.PowerUpExtraLife
	case r < 0.12:
		return components.PowerUpNarrow
	case r < 0.22:
		return components.PowerUpSlowTime
	case r < 0.35:
		return components.PowerUpSpeedTime
	case r < 0.50:
		return components.PowerUpMultiBall
	}
	rest := [...]components.PowerUpKind{
		components.PowerUpWiden,
		components.PowerUpPassThrough,
		components.PowerUpFloorShield,
	}
	return rest[rng.IntN(len(rest))]
}

// maybeDropPickup 按掉落概率在砖块位置生成道具
func maybeDropPickup(w *game.World, x, y float64) {
	if w.Rand.Float64() >= w.Config.Pickup.DropChance {
		return
	}
	entities.NewPickupEntity(w.EntityManager, x, y, RollPickupKind(w.Rand))
}
