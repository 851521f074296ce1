package components

// PickupComponent 下落中的道具
// 位置（左上角）存放在 PositionComponent
type PickupComponent struct {
	Kind   PowerUpKind
	Active bool
}
