package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// BreakoutConfigPath 内置玩法配置文件路径
const BreakoutConfigPath = "data/breakout.yaml"

// BreakoutConfig 玩法配置
//
// 所有长度单位都是逻辑竞技场单位，与物理窗口尺寸无关。
// 所有"每帧"数值都以固定 60 TPS 为前提。
//
// 配置文件位置: data/breakout.yaml
type BreakoutConfig struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Ball     BallConfig     `yaml:"ball"`
	Brick    BrickConfig    `yaml:"brick"`
	Pickup   PickupConfig   `yaml:"pickup"`
	Effects  EffectsConfig  `yaml:"effects"`
	Particle ParticleConfig `yaml:"particle"`
	Session  SessionConfig  `yaml:"session"`
	Audio    AudioConfig    `yaml:"audio"`
}

// ArenaConfig 逻辑竞技场
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// WallInset 左、右、上三面墙的厚度
	WallInset float64 `yaml:"wallInset"`
	// ShieldOffset 底部护盾距竞技场底边的距离
	ShieldOffset float64 `yaml:"shieldOffset"`
}

// PaddleConfig 球拍
type PaddleConfig struct {
	BaseWidth    float64 `yaml:"baseWidth"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottomOffset"` // 球拍顶边距竞技场底边的距离
	WidenFactor  float64 `yaml:"widenFactor"`
	NarrowFactor float64 `yaml:"narrowFactor"`
}

// BallConfig 球
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	TrailLength int     `yaml:"trailLength"`
	// SpeedGrowth 每次击中球拍后的速度增长系数
	SpeedGrowth float64 `yaml:"speedGrowth"`
	// MaxBounceAngleDeg 击中球拍边缘时相对竖直向上的最大偏角（度）
	MaxBounceAngleDeg float64 `yaml:"maxBounceAngleDeg"`
	LostMargin        float64 `yaml:"lostMargin"`
	// LaunchSpreadX 发射时水平速度范围 (-spread/2, spread/2)
	LaunchSpreadX float64 `yaml:"launchSpreadX"`
	// LaunchSpeedY 发射时竖直速度基准值，每关额外增加 LaunchStageBoost
	LaunchSpeedY     float64 `yaml:"launchSpeedY"`
	LaunchStageBoost float64 `yaml:"launchStageBoost"`
	SplitAngle       float64 `yaml:"splitAngle"` // 弧度
	MaxBalls         int     `yaml:"maxBalls"`
}

// BrickConfig 砖块网格
type BrickConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
	Top     float64 `yaml:"top"`
	// ClassicBonusChance 经典模板中非加固砖块成为奖励砖块的概率
	ClassicBonusChance float64 `yaml:"classicBonusChance"`
	// BonusChance 其他模板中非加固砖块成为奖励砖块的概率
	BonusChance float64 `yaml:"bonusChance"`
}

// PickupConfig 道具
type PickupConfig struct {
	FallSpeed  float64 `yaml:"fallSpeed"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CatchWidth float64 `yaml:"catchWidth"` // 与球拍判定时使用的宽度
	DropChance float64 `yaml:"dropChance"`
}

// EffectsConfig 道具效果
type EffectsConfig struct {
	DurationFrames  int     `yaml:"durationFrames"`
	SlowMultiplier  float64 `yaml:"slowMultiplier"`
	SpeedMultiplier float64 `yaml:"speedMultiplier"`
}

// ParticleConfig 碎裂粒子
type ParticleConfig struct {
	BurstCount int     `yaml:"burstCount"`
	Spread     float64 `yaml:"spread"`
	Decay      float64 `yaml:"decay"`
	Size       float64 `yaml:"size"`
}

// SessionConfig 对局
type SessionConfig struct {
	StartingLives int `yaml:"startingLives"`
	ItemLogLength int `yaml:"itemLogLength"`
	// PersistHighScore 由宿主决定是否跨会话保存最高分，默认关闭
	PersistHighScore bool `yaml:"persistHighScore"`
}

// AudioConfig 音效
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sampleRate"`
}

// PaddleY 球拍顶边的 Y 坐标
func (c *BreakoutConfig) PaddleY() float64 {
	return c.Arena.Height - c.Paddle.BottomOffset
}

// ShieldY 底部护盾边界的 Y 坐标
func (c *BreakoutConfig) ShieldY() float64 {
	return c.Arena.Height - c.Arena.ShieldOffset
}

// MaxBounceAngle 最大反弹角（弧度）
func (c *BreakoutConfig) MaxBounceAngle() float64 {
	return c.Ball.MaxBounceAngleDeg * math.Pi / 180
}

// DefaultBreakoutConfig 返回内置默认配置
// 数值与 data/breakout.yaml 保持一致，测试和降级场景直接使用
func DefaultBreakoutConfig() *BreakoutConfig {
	return &BreakoutConfig{
		Arena: ArenaConfig{
			Width:        2000,
			Height:       1500,
			WallInset:    50,
			ShieldOffset: 60,
		},
		Paddle: PaddleConfig{
			BaseWidth:    300,
			Height:       30,
			BottomOffset: 150,
			WidenFactor:  1.5,
			NarrowFactor: 0.5,
		},
		Ball: BallConfig{
			Radius:            12,
			TrailLength:       10,
			SpeedGrowth:       1.015,
			MaxBounceAngleDeg: 72,
			LostMargin:        100,
			LaunchSpreadX:     6,
			LaunchSpeedY:      8,
			LaunchStageBoost:  0.2,
			SplitAngle:        0.35,
			MaxBalls:          60,
		},
		Brick: BrickConfig{
			Width:              80,
			Height:             45,
			Padding:            10,
			Top:                200,
			ClassicBonusChance: 0.03,
			BonusChance:        0.05,
		},
		Pickup: PickupConfig{
			FallSpeed:  7,
			Width:      100,
			Height:     50,
			CatchWidth: 80,
			DropChance: 0.22,
		},
		Effects: EffectsConfig{
			DurationFrames:  450,
			SlowMultiplier:  0.6,
			SpeedMultiplier: 1.4,
		},
		Particle: ParticleConfig{
			BurstCount: 10,
			Spread:     30,
			Decay:      0.02,
			Size:       10,
		},
		Session: SessionConfig{
			StartingLives: 3,
			ItemLogLength: 5,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 48000,
		},
	}
}

// LoadBreakoutConfig 从文件加载玩法配置
//
// 参数:
//   - path: 配置文件路径（如 "data/breakout.yaml"）
//
// 返回:
//   - *BreakoutConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadBreakoutConfig(path string) (*BreakoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read breakout config: %w", err)
	}
	return ParseBreakoutConfig(data)
}

// ParseBreakoutConfig 解析 YAML 格式的玩法配置
// 未出现在 YAML 中的字段保留默认值
func ParseBreakoutConfig(data []byte) (*BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse breakout config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid breakout config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *BreakoutConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %.1fx%.1f", c.Arena.Width, c.Arena.Height)
	}
	if c.Arena.WallInset < 0 || c.Arena.WallInset*2 >= c.Arena.Width {
		return fmt.Errorf("wall inset %.1f does not fit arena width %.1f", c.Arena.WallInset, c.Arena.Width)
	}
	if c.Paddle.BaseWidth <= 0 || c.Paddle.Height <= 0 {
		return fmt.Errorf("paddle size must be positive")
	}
	if c.Paddle.WidenFactor <= 1 {
		return fmt.Errorf("widenFactor must be > 1, got %.2f", c.Paddle.WidenFactor)
	}
	if c.Paddle.NarrowFactor <= 0 || c.Paddle.NarrowFactor >= 1 {
		return fmt.Errorf("narrowFactor must be in (0,1), got %.2f", c.Paddle.NarrowFactor)
	}
	if c.Paddle.BaseWidth*c.Paddle.WidenFactor > c.Arena.Width-2*c.Arena.WallInset {
		return fmt.Errorf("widened paddle does not fit between the walls")
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive")
	}
	if c.Ball.TrailLength < 0 {
		return fmt.Errorf("trailLength must be >= 0")
	}
	if c.Ball.SpeedGrowth < 1 {
		return fmt.Errorf("speedGrowth must be >= 1, got %.3f", c.Ball.SpeedGrowth)
	}
	if c.Ball.MaxBounceAngleDeg <= 0 || c.Ball.MaxBounceAngleDeg >= 90 {
		return fmt.Errorf("maxBounceAngleDeg must be in (0,90), got %.1f", c.Ball.MaxBounceAngleDeg)
	}
	if c.Ball.MaxBalls < 1 {
		return fmt.Errorf("maxBalls must be >= 1")
	}
	if c.Brick.Width <= 0 || c.Brick.Height <= 0 || c.Brick.Padding < 0 {
		return fmt.Errorf("invalid brick cell %.1fx%.1f padding %.1f", c.Brick.Width, c.Brick.Height, c.Brick.Padding)
	}
	if !isProbability(c.Brick.BonusChance) || !isProbability(c.Brick.ClassicBonusChance) {
		return fmt.Errorf("bonus chances must be in [0,1]")
	}
	if !isProbability(c.Pickup.DropChance) {
		return fmt.Errorf("dropChance must be in [0,1], got %.2f", c.Pickup.DropChance)
	}
	if c.Effects.DurationFrames <= 0 {
		return fmt.Errorf("durationFrames must be positive")
	}
	if c.Effects.SlowMultiplier <= 0 || c.Effects.SlowMultiplier >= 1 {
		return fmt.Errorf("slowMultiplier must be in (0,1), got %.2f", c.Effects.SlowMultiplier)
	}
	if c.Effects.SpeedMultiplier <= 1 {
		return fmt.Errorf("speedMultiplier must be > 1, got %.2f", c.Effects.SpeedMultiplier)
	}
	if c.Particle.Decay <= 0 {
		return fmt.Errorf("particle decay must be positive")
	}
	if c.Session.StartingLives < 1 {
		return fmt.Errorf("startingLives must be >= 1")
	}
	if c.Session.ItemLogLength < 0 {
		return fmt.Errorf("itemLogLength must be >= 0")
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sampleRate must be positive")
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
