package systems

import (
	"math"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/entities"
	"github.com/decker502/tennisbreak/pkg/game"
)

// PhysicsSystem 处理球的运动和碰撞
//
// 每帧按实体创建顺序处理所有球，对每个运动中的球依次检测：
// 墙 → 球拍 → 底部护盾 → 砖块 → 出界。
// 多球分裂延迟到所有球处理完之后执行，避免在遍历过程中修改球的集合。
type PhysicsSystem struct {
	world *game.World
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - world: 当前对局
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
func NewPhysicsSystem(world *game.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

// ballState 单个球在本帧用到的组件
type ballState struct {
	id   ecs.EntityID
	ball *components.BallComponent
	pos  *components.PositionComponent
	vel  *components.VelocityComponent
}

// brickState 单个砖块在本帧用到的组件
type brickState struct {
	brick *components.BrickComponent
	pos   *components.PositionComponent
}

// Update 推进所有球一帧
func (ps *PhysicsSystem) Update() {
	w := ps.world
	em := w.EntityManager

	balls := ps.collectBalls()
	bricks := ps.collectBricks()

	maxSpeed := 0.0
	for _, b := range balls {
		if !b.ball.Active {
			continue
		}
		if b.ball.Resting {
			ps.pinToPaddle(b)
			continue
		}

		ps.integrate(b)
		ps.collideWalls(b)
		ps.collidePaddle(b)
		ps.collideShield(b)
		ps.collideBricks(b, bricks)

		if b.pos.Y > w.Config.Arena.Height+w.Config.Ball.LostMargin {
			b.ball.Active = false
			em.DestroyEntity(b.id)
		}

		speed := math.Hypot(b.vel.VX, b.vel.VY) * w.Status.SpeedMultiplier
		if speed > maxSpeed {
			maxSpeed = speed
		}
	}
	w.MaxBallSpeed = maxSpeed

	ps.splitBalls(balls)
}

func (ps *PhysicsSystem) collectBalls() []ballState {
	em := ps.world.EntityManager
	ids := ecs.GetEntitiesWith3[
		*components.BallComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](em)

	balls := make([]ballState, 0, len(ids))
	for _, id := range ids {
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		balls = append(balls, ballState{id: id, ball: ball, pos: pos, vel: vel})
	}
	return balls
}

func (ps *PhysicsSystem) collectBricks() []brickState {
	em := ps.world.EntityManager
	ids := ecs.GetEntitiesWith2[*components.BrickComponent, *components.PositionComponent](em)

	bricks := make([]brickState, 0, len(ids))
	for _, id := range ids {
		brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		bricks = append(bricks, brickState{brick: brick, pos: pos})
	}
	return bricks
}

// pinToPaddle 等待发射的球固定在球拍中心上方
func (ps *PhysicsSystem) pinToPaddle(b ballState) {
	w := ps.world
	b.pos.X = w.PaddleCenterX()
	b.pos.Y = w.Config.PaddleY() - w.Config.Ball.Radius
	b.vel.VX, b.vel.VY = 0, 0
}

// integrate 按速度倍率移动并记录拖尾
func (ps *PhysicsSystem) integrate(b ballState) {
	w := ps.world
	mult := w.Status.SpeedMultiplier
	b.pos.X += b.vel.VX * mult
	b.pos.Y += b.vel.VY * mult
	b.ball.PushTrail(b.pos.X, b.pos.Y, w.Config.Ball.TrailLength)
}

// collideWalls 左、右、上三面墙
//
// 反弹方向总是指向远离墙的一侧，球仍在墙内时不会被再次反向推回墙里。
func (ps *PhysicsSystem) collideWalls(b ballState) {
	w := ps.world
	r := w.Config.Ball.Radius
	inset := w.Config.Arena.WallInset

	switch {
	case b.pos.X < inset+r:
		if b.vel.VX < 0 {
			b.vel.VX = -b.vel.VX
			w.Emit(game.CueWall, 0)
		}
	case b.pos.X > w.Config.Arena.Width-inset-r:
		if b.vel.VX > 0 {
			b.vel.VX = -b.vel.VX
			w.Emit(game.CueWall, 0)
		}
	}

	if b.pos.Y < inset+r && b.vel.VY < 0 {
		b.vel.VY = -b.vel.VY
		w.Emit(game.CueWall, 0)
	}
}

// collidePaddle 球拍反弹
//
// 出射角由击中位置决定：中心竖直向上，边缘偏转最大反弹角。速度每次增长 SpeedGrowth 倍。
func (ps *PhysicsSystem) collidePaddle(b ballState) {
	w := ps.world
	cfg := w.Config
	r := cfg.Ball.Radius
	paddleY := cfg.PaddleY()
	width := w.PaddleWidth()

	if !(b.pos.Y+r > paddleY && b.pos.Y-r < paddleY+cfg.Paddle.Height &&
		b.pos.X > w.PaddleX && b.pos.X < w.PaddleX+width) {
		return
	}

	hitPos := (b.pos.X - w.PaddleCenterX()) / (width / 2)
	speed := math.Hypot(b.vel.VX, b.vel.VY) * cfg.Ball.SpeedGrowth
	angle := hitPos * cfg.MaxBounceAngle()
	b.vel.VX = math.Sin(angle) * speed
	b.vel.VY = -math.Cos(angle) * speed
	b.pos.Y = paddleY - r

	w.Session.Combo = 1
	if w.Status.MultiBall() {
		b.ball.SplitPending = true
	}
	w.Emit(game.CuePaddle, 0)
}

// collideShield 底部护盾（仅在生效时）
func (ps *PhysicsSystem) collideShield(b ballState) {
	w := ps.world
	if !w.Status.FloorShield() {
		return
	}
	r := w.Config.Ball.Radius
	shieldY := w.Config.ShieldY()
	if b.pos.Y+r > shieldY {
		b.vel.VY = -math.Abs(b.vel.VY)
		b.pos.Y = shieldY - 1 - r
		w.Emit(game.CueShield, 0)
	}
}

// collideBricks 砖块碰撞
//
// 球按边长为直径的正方形与砖块做 AABB 检测。反弹轴取球心到砖块边缘距离较小的一轴，
// 这是对圆-矩形碰撞的近似。穿透生效时不反弹，且同一帧可连续击碎多块砖。
func (ps *PhysicsSystem) collideBricks(b ballState, bricks []brickState) {
	w := ps.world
	r := w.Config.Ball.Radius
	passThrough := w.Status.PassThrough()

	for _, br := range bricks {
		if !br.brick.Active {
			continue
		}
		bx, by := br.pos.X, br.pos.Y
		bw, bh := br.brick.Width, br.brick.Height
		if !(b.pos.X+r > bx && b.pos.X-r < bx+bw && b.pos.Y+r > by && b.pos.Y-r < by+bh) {
			continue
		}

		if !passThrough {
			dx := math.Min(math.Abs(b.pos.X-bx), math.Abs(b.pos.X-(bx+bw)))
			dy := math.Min(math.Abs(b.pos.Y-by), math.Abs(b.pos.Y-(by+bh)))
			if dy < dx {
				b.vel.VY = -b.vel.VY
			} else {
				b.vel.VX = -b.vel.VX
			}
		}

		ps.damageBrick(br)

		if !passThrough {
			break
		}
	}
}

// damageBrick 砖块耐久减一，耐久耗尽时击碎
func (ps *PhysicsSystem) damageBrick(br brickState) {
	w := ps.world
	brick := br.brick

	game.Assert(brick.Active, "collision against inactive brick")
	brick.HitPoints--
	if brick.HitPoints > 0 {
		w.Emit(game.CueBrickHit, brick.HitPoints)
		return
	}

	brick.HitPoints = 0
	brick.Active = false
	w.Session.AddScore(brick.Variant.BasePoints() * w.Session.Combo)
	w.Session.Combo++

	pc := w.Config.Particle
	entities.NewParticleBurst(w.EntityManager, w.Rand,
		br.pos.X+brick.Width/2, br.pos.Y+brick.Height/2,
		pc.BurstCount, pc.Spread, brick.OriginalColor)
	maybeDropPickup(w, br.pos.X, br.pos.Y)

	w.SetShake(25)
	w.Emit(game.CueBrickBreak, 0)
}

// splitBalls 处理本帧击中球拍的多球分裂
//
// 每个待分裂的球以 ±SplitAngle 生成两个新球，球的总数不超过 MaxBalls。
func (ps *PhysicsSystem) splitBalls(balls []ballState) {
	w := ps.world
	cfg := w.Config.Ball

	live := 0
	for _, b := range balls {
		if b.ball.Active {
			live++
		}
	}

	for _, b := range balls {
		if !b.ball.SplitPending {
			continue
		}
		b.ball.SplitPending = false
		if !b.ball.Active || !w.Status.MultiBall() || live+2 > cfg.MaxBalls {
			continue
		}

		speed := math.Hypot(b.vel.VX, b.vel.VY)
		angle := math.Atan2(b.vel.VY, b.vel.VX)
		for _, delta := range [...]float64{cfg.SplitAngle, -cfg.SplitAngle} {
			entities.NewMovingBallEntity(w.EntityManager, b.pos.X, b.pos.Y,
				math.Cos(angle+delta)*speed, math.Sin(angle+delta)*speed)
		}
		live += 2
	}
}

// ActiveBallCount 未丢失的球的数量（包括等待发射的球）
func ActiveBallCount(em *ecs.EntityManager) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](em) {
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
		if ball.Active {
			n++
		}
	}
	return n
}
