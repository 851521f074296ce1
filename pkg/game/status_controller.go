package game

import (
	"image/color"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/config"
)

// StatusTimers 计时类道具的剩余帧数
type StatusTimers struct {
	Widen       int
	Narrow      int
	PassThrough int
	FloorShield int
	MultiBall   int
}

// timer 返回计时类道具对应的计时器
// 非计时类道具返回 nil
func (t *StatusTimers) timer(kind components.PowerUpKind) *int {
	switch kind {
	case components.PowerUpWiden:
		return &t.Widen
	case components.PowerUpNarrow:
		return &t.Narrow
	case components.PowerUpPassThrough:
		return &t.PassThrough
	case components.PowerUpFloorShield:
		return &t.FloorShield
	case components.PowerUpMultiBall:
		return &t.MultiBall
	case components.PowerUpSlowTime, components.PowerUpSpeedTime, components.PowerUpExtraLife:
		return nil
	}
	return nil
}

// 球和球拍的着色
var (
	colorBallDefault   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPaddleDefault = color.RGBA{R: 0xa3, G: 0xe6, B: 0x35, A: 0xff}
)

// StatusController 道具效果控制器
//
// 职责：
//   - 维护计时类道具的剩余帧数
//   - 维护球速倍率（减速/加速道具，不计时）
//   - 每次调用时从计时器重新推导球拍有效宽度，不缓存
type StatusController struct {
	cfg     *config.BreakoutConfig
	session *Session

	Timers          StatusTimers
	SpeedMultiplier float64
}

// NewStatusController 创建道具效果控制器
//
// 参数：
//   - cfg: 玩法配置（持续时间、倍率、球拍基础宽度）
//   - session: 对局状态，加命道具直接修改其 Lives
func NewStatusController(cfg *config.BreakoutConfig, session *Session) *StatusController {
	return &StatusController{
		cfg:             cfg,
		session:         session,
		SpeedMultiplier: 1,
	}
}

// Reset 清空所有计时器并恢复球速（开局/重开）
func (c *StatusController) Reset() {
	c.Timers = StatusTimers{}
	c.SpeedMultiplier = 1
}

// ResetSpeed 恢复球速倍率（新关卡/失去一条命）
func (c *StatusController) ResetSpeed() {
	c.SpeedMultiplier = 1
}

// Tick 所有正数计时器减一
func (c *StatusController) Tick() {
	for _, t := range []*int{
		&c.Timers.Widen,
		&c.Timers.Narrow,
		&c.Timers.PassThrough,
		&c.Timers.FloorShield,
		&c.Timers.MultiBall,
	} {
		if *t > 0 {
			*t--
		}
	}
}

// ApplyPickup 应用道具效果
//
//   - 加命：立即生效，无计时器
//   - 减速/加速：覆盖球速倍率，直到被另一个减速/加速道具覆盖或进入新关卡
//   - 其他：把对应计时器重置为固定时长（不叠加）
func (c *StatusController) ApplyPickup(kind components.PowerUpKind) {
	switch kind {
	case components.PowerUpExtraLife:
		c.session.Lives++
	case components.PowerUpSlowTime:
		c.SpeedMultiplier = c.cfg.Effects.SlowMultiplier
	case components.PowerUpSpeedTime:
		c.SpeedMultiplier = c.cfg.Effects.SpeedMultiplier
	case components.PowerUpWiden, components.PowerUpNarrow, components.PowerUpMultiBall,
		components.PowerUpPassThrough, components.PowerUpFloorShield:
		*c.Timers.timer(kind) = c.cfg.Effects.DurationFrames
	}
}

// Active 某个计时类道具是否生效中
func (c *StatusController) Active(kind components.PowerUpKind) bool {
	t := c.Timers.timer(kind)
	return t != nil && *t > 0
}

// EffectivePaddleWidth 球拍有效宽度
//
// 加长优先：两个计时器同时为正时取加长宽度
func (c *StatusController) EffectivePaddleWidth() float64 {
	base := c.cfg.Paddle.BaseWidth
	switch {
	case c.Timers.Widen > 0:
		return base * c.cfg.Paddle.WidenFactor
	case c.Timers.Narrow > 0:
		return base * c.cfg.Paddle.NarrowFactor
	default:
		return base
	}
}

// PassThrough 穿透是否生效
func (c *StatusController) PassThrough() bool {
	return c.Timers.PassThrough > 0
}

// FloorShield 底部护盾是否生效
func (c *StatusController) FloorShield() bool {
	return c.Timers.FloorShield > 0
}

// MultiBall 多球是否生效
func (c *StatusController) MultiBall() bool {
	return c.Timers.MultiBall > 0
}

// BallTint 球的颜色：穿透优先，其次多球
func (c *StatusController) BallTint() color.RGBA {
	switch {
	case c.PassThrough():
		return components.PowerUpPassThrough.Color()
	case c.MultiBall():
		return components.PowerUpMultiBall.Color()
	default:
		return colorBallDefault
	}
}

// PaddleTint 球拍颜色：与宽度推导使用相同的优先级
func (c *StatusController) PaddleTint() color.RGBA {
	switch {
	case c.Timers.Widen > 0:
		return components.PowerUpWiden.Color()
	case c.Timers.Narrow > 0:
		return components.PowerUpNarrow.Color()
	default:
		return colorPaddleDefault
	}
}
