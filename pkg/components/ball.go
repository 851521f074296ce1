package components

// BallComponent 球的状态数据
//
// 球的位置和速度分别存放在 PositionComponent 和 VelocityComponent 中。
type BallComponent struct {
	// Trail 拖尾历史坐标，按时间从旧到新排列
	Trail []Point
	// Resting 球停在球拍上等待发射
	// 为 true 时速度必须为零，位置钉在球拍中心上方
	Resting bool
	// Active 为 false 表示球已丢失，帧末统一清理
	Active bool
	// SplitPending 本帧碰到球拍且多球效果生效，等待碰撞结束后分裂
	SplitPending bool
}

// PushTrail 追加拖尾点，超过 maxLen 时丢弃最旧的点
func (b *BallComponent) PushTrail(x, y float64, maxLen int) {
	if maxLen <= 0 {
		b.Trail = b.Trail[:0]
		return
	}
	if len(b.Trail) >= maxLen {
		// 原地左移，避免切片头部不断前移导致底层数组泄漏
		drop := len(b.Trail) - maxLen + 1
		copy(b.Trail, b.Trail[drop:])
		b.Trail = b.Trail[:len(b.Trail)-drop]
	}
	b.Trail = append(b.Trail, Point{X: x, Y: y})
}
