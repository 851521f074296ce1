package game

import (
	"math/rand/v2"

	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/utils"
)

// World 一局游戏的全部可变状态
//
// 由 systems.Simulation 持有，并以参数形式传给各个系统和快照构建函数。
// 不存在包级别的全局状态，同一进程内可以并存多个 World（测试中常见）。
type World struct {
	EntityManager *ecs.EntityManager
	Config        *config.BreakoutConfig
	Session       *Session
	Status        *StatusController
	Rand          *rand.Rand
	Cues          CueSink

	// PaddleX 球拍左边缘的逻辑 X 坐标
	PaddleX float64
	// Viewport 当前逻辑-物理坐标映射，每次窗口尺寸变化时重新计算
	Viewport utils.Viewport
	// Shake 屏幕震动强度，仅用于渲染
	Shake float64
	// TemplateID 当前关卡使用的模板
	TemplateID string
	// MaxBallSpeed 本帧所有活动球的最大速度（已乘速度倍率）
	MaxBallSpeed float64
}

// NewWorld 创建 World
//
// 参数：
//   - cfg: 已验证的玩法配置
//   - rng: 随机数源，测试中传入固定种子
//   - cues: 音效提示接收者，nil 表示静音
//   - highScore: 初始最高分
func NewWorld(cfg *config.BreakoutConfig, rng *rand.Rand, cues CueSink, highScore int) *World {
	if cues == nil {
		cues = NopCueSink{}
	}
	session := NewSession(cfg.Session.ItemLogLength, highScore)
	w := &World{
		EntityManager: ecs.NewEntityManager(),
		Config:        cfg,
		Session:       session,
		Status:        NewStatusController(cfg, session),
		Rand:          rng,
		Cues:          cues,
		Viewport:      utils.ComputeScale(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.Width, cfg.Arena.Height),
	}
	w.CenterPaddle()
	return w
}

// Emit 发出音效提示
func (w *World) Emit(kind CueKind, param int) {
	w.Cues.Emit(Cue{Kind: kind, Param: param})
}

// PaddleWidth 球拍当前有效宽度
func (w *World) PaddleWidth() float64 {
	return w.Status.EffectivePaddleWidth()
}

// CenterPaddle 球拍居中
func (w *World) CenterPaddle() {
	w.PaddleX = (w.Config.Arena.Width - w.PaddleWidth()) / 2
}

// ClampPaddle 把球拍限制在两侧墙之间
// 有效宽度变化后需要重新调用
func (w *World) ClampPaddle() {
	w.PaddleX = w.clampPaddleX(w.PaddleX)
}

func (w *World) clampPaddleX(x float64) float64 {
	minX := w.Config.Arena.WallInset
	maxX := w.Config.Arena.Width - w.Config.Arena.WallInset - w.PaddleWidth()
	if x < minX {
		return minX
	}
	if x > maxX {
		return maxX
	}
	return x
}

// MovePaddleTo 以球拍中心对准逻辑 X 坐标
func (w *World) MovePaddleTo(logicalX float64) {
	w.PaddleX = w.clampPaddleX(logicalX - w.PaddleWidth()/2)
}

// PaddleCenterX 球拍中心 X 坐标
func (w *World) PaddleCenterX() float64 {
	return w.PaddleX + w.PaddleWidth()/2
}

// SetShake 设置屏幕震动强度
func (w *World) SetShake(amount float64) {
	w.Shake = amount
}

// DecayShake 屏幕震动逐帧衰减
func (w *World) DecayShake() {
	const shakeDecay = 0.82
	w.Shake *= shakeDecay
	if w.Shake < 0.01 {
		w.Shake = 0
	}
}
