package systems

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/utils"
)

// Simulation 一局游戏的帧驱动模拟
//
// 职责：
//   - 持有 World 和各个系统，按固定顺序每帧推进一次
//   - 处理失去生命、游戏结束、过关三种状态转换
//   - 接收宿主的输入（指针位置、发射、开始）
//
// 所有方法都必须在同一个 goroutine 上调用。
type Simulation struct {
	world      *game.World
	generator  *LevelGenerator
	particles  *ParticleSystem
	pickups    *PickupSystem
	physics    *PhysicsSystem
	highScores game.HighScoreStore
}

// NewSimulation 创建模拟
//
// 参数:
//   - cfg: 已验证的玩法配置
//   - library: 关卡模板库
//   - rng: 随机数源（关卡、发射角度、掉落、粒子）
//   - cues: 音效提示接收者，可为 nil
//   - highScores: 最高分存储，nil 时使用内存存储
//
// 返回:
//   - error: 模板库为空时返回错误
func NewSimulation(cfg *config.BreakoutConfig, library *config.TemplateLibrary, rng *rand.Rand,
	cues game.CueSink, highScores game.HighScoreStore) (*Simulation, error) {
	if highScores == nil {
		highScores = game.NewMemoryHighScoreStore()
	}

	best, err := highScores.Load()
	if err != nil {
		log.Printf("[Simulation] Warning: Failed to load high score: %v", err)
		best = 0
	}

	world := game.NewWorld(cfg, rng, cues, best)
	generator, err := NewLevelGenerator(library, cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create level generator: %w", err)
	}

	return &Simulation{
		world:      world,
		generator:  generator,
		particles:  NewParticleSystem(world),
		pickups:    NewPickupSystem(world),
		physics:    NewPhysicsSystem(world),
		highScores: highScores,
	}, nil
}

// World 返回模拟的世界状态（测试和调试工具使用）
func (s *Simulation) World() *game.World {
	return s.world
}

// Phase 当前对局阶段
func (s *Simulation) Phase() game.Phase {
	return s.world.Session.Phase
}

// Start 开始新对局（也用于游戏结束后重新开始）
//
// 只能在等待开始或游戏结束阶段调用，否则返回 game.ErrInvalidTransition。
func (s *Simulation) Start() error {
	w := s.world
	if err := w.Session.Begin(w.Config.Session.StartingLives); err != nil {
		return err
	}

	em := w.EntityManager
	for _, id := range em.GetEntitiesWith() {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()

	w.Status.Reset()
	w.ClampPaddle()
	w.TemplateID = ""
	templateID, err := s.generator.Build(em, w.Session.Stage, "")
	if err != nil {
		return fmt.Errorf("failed to build stage 1: %w", err)
	}
	w.TemplateID = templateID
	s.spawnRestingBall()

	w.SetShake(30)
	w.Emit(game.CueIntro, 0)
	log.Printf("[Simulation] Game started: template=%s lives=%d", templateID, w.Session.Lives)
	return nil
}

// Launch 发射所有等待中的球
func (s *Simulation) Launch() {
	w := s.world
	if w.Session.Phase != game.PhasePlaying {
		return
	}

	em := w.EntityManager
	bc := w.Config.Ball
	for _, id := range ecs.GetEntitiesWith2[*components.BallComponent, *components.VelocityComponent](em) {
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
		if !ball.Active || !ball.Resting {
			continue
		}
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		ball.Resting = false
		vel.VX = (w.Rand.Float64() - 0.5) * bc.LaunchSpreadX
		vel.VY = -(bc.LaunchSpeedY + float64(w.Session.Stage)*bc.LaunchStageBoost)
		w.Emit(game.CueLaunch, 0)
	}
}

// SetPointerX 按物理 X 坐标移动球拍（球拍中心对准指针）
// 立即生效，不等待下一帧
func (s *Simulation) SetPointerX(physicalX float64) {
	x, _ := s.world.Viewport.ToLogical(physicalX, 0)
	s.world.MovePaddleTo(x)
}

// Resize 物理绘制表面尺寸变化时重新计算坐标映射
func (s *Simulation) Resize(physicalWidth, physicalHeight int) {
	arena := s.world.Config.Arena
	s.world.Viewport = utils.ComputeScale(float64(physicalWidth), float64(physicalHeight), arena.Width, arena.Height)
}

// Step 推进一帧，仅在进行中阶段生效
func (s *Simulation) Step() {
	w := s.world
	if w.Session.Phase != game.PhasePlaying {
		return
	}

	w.Status.Tick()
	w.ClampPaddle()
	s.particles.Update()
	s.pickups.Update()
	s.physics.Update()

	if ActiveBallCount(w.EntityManager) == 0 {
		s.handleAllBallsLost()
	}
	if w.Session.Phase == game.PhasePlaying && s.stageCleared() {
		s.advanceStage()
	}

	w.EntityManager.RemoveMarkedEntities()
	w.DecayShake()

	game.Assert(w.Session.Lives >= 0, "lives must never be negative")
}

// handleAllBallsLost 所有球都丢失：还有剩余生命则补一个球，否则游戏结束
func (s *Simulation) handleAllBallsLost() {
	w := s.world
	if w.Session.LoseLife() {
		s.spawnRestingBall()
		w.Status.ResetSpeed()
		w.Emit(game.CueLifeLost, 0)
		log.Printf("[Simulation] Life lost, %d remaining", w.Session.Lives)
		return
	}

	if err := w.Session.EndGame(); err != nil {
		log.Printf("[Simulation] Warning: %v", err)
		return
	}
	w.Emit(game.CueGameOver, 0)
	log.Printf("[Simulation] Game over: score=%d stage=%d", w.Session.Score, w.Session.Stage)

	if err := s.SaveHighScore(); err != nil {
		log.Printf("[Simulation] Warning: Failed to save high score: %v", err)
	}
}

// stageCleared 当前关卡的所有砖块是否都已击碎
func (s *Simulation) stageCleared() bool {
	em := s.world.EntityManager
	ids := ecs.GetEntitiesWith1[*components.BrickComponent](em)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
		if brick.Active {
			return false
		}
	}
	return true
}

// advanceStage 进入下一关：重新生成砖块，重置球速，只保留一个等待发射的球
func (s *Simulation) advanceStage() {
	w := s.world
	em := w.EntityManager

	w.Session.NextStage()
	templateID, err := s.generator.Build(em, w.Session.Stage, w.TemplateID)
	if err != nil {
		// 模板库在构造时已验证非空，这里失败说明内部状态被破坏
		game.Assert(false, err.Error())
		log.Printf("[Simulation] Error: %v", err)
		return
	}
	w.TemplateID = templateID
	w.Status.ResetSpeed()

	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](em) {
		em.DestroyEntity(id)
	}
	s.spawnRestingBall()

	w.Emit(game.CueStageClear, 0)
	log.Printf("[Simulation] Stage %d: template=%s", w.Session.Stage, templateID)
}

// spawnRestingBall 在球拍上方生成一个等待发射的球
func (s *Simulation) spawnRestingBall() ecs.EntityID {
	w := s.world
	return entities.NewRestingBallEntity(w.EntityManager, w.PaddleCenterX(), w.Config.PaddleY()-w.Config.Ball.Radius)
}

// SaveHighScore 把本局最高分写入存储（只有更高的分数会被保存）
func (s *Simulation) SaveHighScore() error {
	return s.highScores.Save(s.world.Session.HighScore)
}

// Snapshot 构建当前帧的渲染快照
func (s *Simulation) Snapshot() game.Snapshot {
	return BuildSnapshot(s.world)
}
