package components

// PositionComponent 存储实体在逻辑竞技场中的位置
//
// 球、粒子使用中心点；砖块、道具使用左上角。
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体每帧的位移（逻辑单位/帧）
type VelocityComponent struct {
	VX float64
	VY float64
}

// Point 表示一个二维坐标点
type Point struct {
	X, Y float64
}
