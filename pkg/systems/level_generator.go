package systems

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
)

// LevelGenerator 根据形状模板生成关卡砖块
//
// 职责：
//   - 从模板库中随机选择模板，连续两关不重复（模板库只有一个模板时除外）
//   - 把模板中的每个非空格子转换为一个砖块，网格水平居中
//   - 按模板类型分配砖块种类
type LevelGenerator struct {
	library *config.TemplateLibrary
	cfg     *config.BreakoutConfig
	rng     *rand.Rand
}

// NewLevelGenerator 创建关卡生成器
//
// 参数:
//   - library: 模板库，不能为空
//   - cfg: 玩法配置（砖块尺寸、间距、奖励概率）
//   - rng: 随机数源
//
// 返回:
//   - error: 模板库为空时返回 config.ErrEmptyLibrary
func NewLevelGenerator(library *config.TemplateLibrary, cfg *config.BreakoutConfig, rng *rand.Rand) (*LevelGenerator, error) {
	if library == nil || library.Len() == 0 {
		return nil, config.ErrEmptyLibrary
	}
	return &LevelGenerator{library: library, cfg: cfg, rng: rng}, nil
}

// pickTemplate 随机选择模板，排除上一关的模板
func (g *LevelGenerator) pickTemplate(previousTemplateID string) *config.ShapeTemplate {
	if g.library.Len() == 1 {
		return g.library.At(0)
	}

	candidates := make([]*config.ShapeTemplate, 0, g.library.Len())
	for i := 0; i < g.library.Len(); i++ {
		if tpl := g.library.At(i); tpl.ID != previousTemplateID {
			candidates = append(candidates, tpl)
		}
	}
	return candidates[g.rng.IntN(len(candidates))]
}

// Generate 生成一关的砖块布局
//
// 参数:
//   - stageIndex: 关卡号（从 1 开始），仅用于日志
//   - previousTemplateID: 上一关使用的模板，第一关传空字符串
//
// 返回:
//   - []entities.BrickSpec: 砖块列表，按行优先顺序
//   - string: 本关使用的模板 ID
//   - error: 选中的模板没有任何砖块时返回 config.ErrEmptyTemplate
func (g *LevelGenerator) Generate(stageIndex int, previousTemplateID string) ([]entities.BrickSpec, string, error) {
	tpl := g.pickTemplate(previousTemplateID)
	if tpl.BrickCount() == 0 {
		return nil, tpl.ID, fmt.Errorf("template %s: %w", tpl.ID, config.ErrEmptyTemplate)
	}

	bc := g.cfg.Brick
	rows, cols := tpl.RowCount(), tpl.ColCount()
	cellW := bc.Width + bc.Padding
	cellH := bc.Height + bc.Padding
	startX := (g.cfg.Arena.Width - float64(cols)*cellW) / 2

	specs := make([]entities.BrickSpec, 0, tpl.BrickCount())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			clr, ok := tpl.Cell(r, c)
			if !ok {
				continue
			}
			specs = append(specs, entities.BrickSpec{
				X:       startX + float64(c)*cellW,
				Y:       bc.Top + float64(r)*cellH,
				Width:   bc.Width,
				Height:  bc.Height,
				Variant: g.variantFor(tpl, r, c),
				Color:   clr,
			})
		}
	}

	log.Printf("[LevelGenerator] Stage %d: template=%s bricks=%d", stageIndex, tpl.ID, len(specs))
	return specs, tpl.ID, nil
}

// variantFor 决定格子的砖块种类
//
//   - 经典模板：(r+c)%5==0 为加固砖，其余按 ClassicBonusChance 成为奖励砖
//   - 其他模板：上半部分的水平中段为加固砖，其余按 BonusChance 成为奖励砖
func (g *LevelGenerator) variantFor(tpl *config.ShapeTemplate, r, c int) components.BrickVariant {
	if tpl.Classic {
		if (r+c)%5 == 0 {
			return components.BrickReinforced
		}
		if g.rng.Float64() < g.cfg.Brick.ClassicBonusChance {
			return components.BrickBonus
		}
		return components.BrickNormal
	}

	rows, cols := float64(tpl.RowCount()), float64(tpl.ColCount())
	fr, fc := float64(r), float64(c)
	if fr < rows/2 && fc > cols/4 && fc < 3*cols/4 {
		return components.BrickReinforced
	}
	if g.rng.Float64() < g.cfg.Brick.BonusChance {
		return components.BrickBonus
	}
	return components.BrickNormal
}

// Build 清除上一关的砖块并创建新关卡的砖块实体
//
// 返回本关使用的模板 ID
func (g *LevelGenerator) Build(em *ecs.EntityManager, stageIndex int, previousTemplateID string) (string, error) {
	specs, templateID, err := g.Generate(stageIndex, previousTemplateID)
	if err != nil {
		return "", err
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BrickComponent](em) {
		em.DestroyEntity(id)
	}
	for _, spec := range specs {
		entities.NewBrickEntity(em, spec)
	}
	return templateID, nil
}
