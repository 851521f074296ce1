package game

import (
	"encoding/gob"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
)

// StageSaveVersion 关卡快照版本号
// 数据结构发生不兼容变更时递增
const StageSaveVersion = 1

// StageData 关卡砖块布局的序列化数据
type StageData struct {
	Version    int
	Stage      int
	TemplateID string
	Bricks     []BrickData
}

// BrickData 砖块序列化数据，字段与 BrickComponent、PositionComponent 对应
type BrickData struct {
	X, Y          float64
	Width, Height float64
	Variant       components.BrickVariant
	HitPoints     int
	Active        bool
	Color         color.RGBA
	OriginalColor color.RGBA
}

// ActiveCount 活动砖块数量
func (d *StageData) ActiveCount() int {
	n := 0
	for _, b := range d.Bricks {
		if b.Active {
			n++
		}
	}
	return n
}

// TotalHitPoints 活动砖块剩余耐久之和
func (d *StageData) TotalHitPoints() int {
	total := 0
	for _, b := range d.Bricks {
		if b.Active {
			total += b.HitPoints
		}
	}
	return total
}

// StageSerializer 关卡布局序列化器
//
// 这是一个工具类，不是 ECS 系统：
//   - Encode 只读取 EntityManager，不修改游戏状态
//   - Restore 按存档重建砖块实体
type StageSerializer struct{}

// NewStageSerializer 创建关卡序列化器
func NewStageSerializer() *StageSerializer {
	return &StageSerializer{}
}

// Collect 从 EntityManager 收集当前关卡的砖块（按创建顺序）
func (s *StageSerializer) Collect(em *ecs.EntityManager, stage int, templateID string) *StageData {
	data := &StageData{
		Version:    StageSaveVersion,
		Stage:      stage,
		TemplateID: templateID,
	}
	for _, id := range ecs.GetEntitiesWith2[*components.BrickComponent, *components.PositionComponent](em) {
		brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		data.Bricks = append(data.Bricks, BrickData{
			X:             pos.X,
			Y:             pos.Y,
			Width:         brick.Width,
			Height:        brick.Height,
			Variant:       brick.Variant,
			HitPoints:     brick.HitPoints,
			Active:        brick.Active,
			Color:         brick.Color,
			OriginalColor: brick.OriginalColor,
		})
	}
	return data
}

// Encode 把当前关卡布局以 gob 格式写入 w
//
// 参数：
//   - w: 输出目标
//   - em: EntityManager 实例，用于收集砖块
//   - stage: 当前关卡号
//   - templateID: 当前关卡模板
func (s *StageSerializer) Encode(w io.Writer, em *ecs.EntityManager, stage int, templateID string) error {
	if em == nil {
		return fmt.Errorf("EntityManager is nil")
	}
	data := s.Collect(em, stage, templateID)
	if err := gob.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode stage data: %w", err)
	}
	log.Printf("[StageSerializer] Encoded stage %d (%s): %d bricks, %d active",
		stage, templateID, len(data.Bricks), data.ActiveCount())
	return nil
}

// Decode 从 r 读取 gob 格式的关卡布局
// 版本不匹配时返回错误
func (s *StageSerializer) Decode(r io.Reader) (*StageData, error) {
	var data StageData
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode stage data: %w", err)
	}
	if data.Version != StageSaveVersion {
		return nil, fmt.Errorf("incompatible stage data version: got %d, want %d", data.Version, StageSaveVersion)
	}
	return &data, nil
}

// Restore 按存档重建砖块实体，返回创建的实体ID
// 调用方负责事先清理旧砖块
func (s *StageSerializer) Restore(em *ecs.EntityManager, data *StageData) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(data.Bricks))
	for _, b := range data.Bricks {
		id := entities.NewBrickEntity(em, entities.BrickSpec{
			X:       b.X,
			Y:       b.Y,
			Width:   b.Width,
			Height:  b.Height,
			Variant: b.Variant,
			Color:   b.OriginalColor,
		})
		brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
		brick.HitPoints = b.HitPoints
		brick.Active = b.Active
		brick.Color = b.Color
		ids = append(ids, id)
	}
	return ids
}
