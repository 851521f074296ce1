package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
	"github.com/decker502/tennisbreak/pkg/game"
)

// 测试用模板：solo 只有一块普通砖，duo 一块普通砖加一块加固砖
const (
	testTemplateSolo = `
id: solo
palette:
  R: "#ef4444"
rows:
  - "R"
`
	testTemplateDuo = `
id: duo
palette:
  B: "#3b82f6"
rows:
  - "BB"
`
)

// newTestConfig 默认配置，关闭随机奖励砖和道具掉落，便于断言
func newTestConfig() *config.BreakoutConfig {
	cfg := config.DefaultBreakoutConfig()
	cfg.Brick.BonusChance = 0
	cfg.Brick.ClassicBonusChance = 0
	cfg.Pickup.DropChance = 0
	return cfg
}

// newTestLibrary 由 YAML 文本构建模板库
func newTestLibrary(t *testing.T, sources ...string) *config.TemplateLibrary {
	t.Helper()
	templates := make([]*config.ShapeTemplate, 0, len(sources))
	for _, src := range sources {
		tpl, err := config.ParseShapeTemplate([]byte(src))
		if err != nil {
			t.Fatalf("ParseShapeTemplate() error = %v", err)
		}
		templates = append(templates, tpl)
	}
	lib, err := config.NewTemplateLibrary(templates...)
	if err != nil {
		t.Fatalf("NewTemplateLibrary() error = %v", err)
	}
	return lib
}

// newTestWorld 创建一个已开始对局的 World
func newTestWorld(t *testing.T, cfg *config.BreakoutConfig) (*game.World, *game.CueRecorder) {
	t.Helper()
	cues := &game.CueRecorder{}
	w := game.NewWorld(cfg, rand.New(rand.NewPCG(1, 2)), cues, 0)
	if err := w.Session.Begin(cfg.Session.StartingLives); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	return w, cues
}

// newTestSimulation 创建并开始一局模拟
func newTestSimulation(t *testing.T, seed uint64, sources ...string) (*Simulation, *game.CueRecorder, *game.MemoryHighScoreStore) {
	t.Helper()
	if len(sources) == 0 {
		sources = []string{testTemplateSolo, testTemplateDuo}
	}
	cues := &game.CueRecorder{}
	store := game.NewMemoryHighScoreStore()
	sim, err := NewSimulation(newTestConfig(), newTestLibrary(t, sources...), rand.New(rand.NewPCG(seed, seed)), cues, store)
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	if err := sim.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return sim, cues, store
}

// clearEntities 立即删除拥有组件 T 的所有实体
func clearEntities[T any](em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith1[T](em) {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()
}

// addBrick 在指定位置放一块 80x45 的砖
func addBrick(em *ecs.EntityManager, x, y float64, variant components.BrickVariant) *components.BrickComponent {
	id := entities.NewBrickEntity(em, entities.BrickSpec{
		X: x, Y: y, Width: 80, Height: 45, Variant: variant,
	})
	brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
	return brick
}

// addBall 放一个运动中的球，返回其位置和速度组件
func addBall(em *ecs.EntityManager, x, y, vx, vy float64) (*components.PositionComponent, *components.VelocityComponent) {
	id := entities.NewMovingBallEntity(em, x, y, vx, vy)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	return pos, vel
}

func countEntities[T any](em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[T](em))
}
