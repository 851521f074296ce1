package game

import (
	"errors"
	"fmt"

	"github.com/decker502/tennisbreak/pkg/components"
)

// ErrInvalidTransition 对局阶段切换不合法
var ErrInvalidTransition = errors.New("invalid session phase transition")

// Phase 对局阶段
type Phase int

const (
	// PhaseAwaitingStart 等待开始（显示开场界面）
	PhaseAwaitingStart Phase = iota
	// PhasePlaying 进行中
	PhasePlaying
	// PhaseGameOver 游戏结束（显示结算界面）
	PhaseGameOver
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "awaiting_start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session 对局状态
//
// 由 Simulation 独占持有，不是全局单例。
type Session struct {
	Stage     int
	Score     int
	HighScore int
	Lives     int
	// Combo 连击倍率，击碎砖块 +1，球拍击球重置为 1
	Combo int
	Phase Phase
	// ItemLog 最近获得的道具，最新的在前
	ItemLog []components.PowerUpKind

	itemLogLength int
}

// NewSession 创建对局状态
//
// 参数：
//   - itemLogLength: 物品记录保留的条数
//   - highScore: 从最高分存储读取的初始值
func NewSession(itemLogLength, highScore int) *Session {
	return &Session{
		Stage:         1,
		Combo:         1,
		HighScore:     highScore,
		Phase:         PhaseAwaitingStart,
		itemLogLength: itemLogLength,
	}
}

// Begin 开始新对局
// 只能从等待开始或游戏结束阶段进入
func (s *Session) Begin(startingLives int) error {
	if s.Phase == PhasePlaying {
		return fmt.Errorf("begin from %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Stage = 1
	s.Score = 0
	s.Lives = startingLives
	s.Combo = 1
	s.ItemLog = s.ItemLog[:0]
	s.Phase = PhasePlaying
	return nil
}

// EndGame 进入游戏结束阶段
// 只能从进行中阶段进入
func (s *Session) EndGame() error {
	if s.Phase != PhasePlaying {
		return fmt.Errorf("end game from %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Lives = 0
	s.Phase = PhaseGameOver
	return nil
}

// AddScore 加分并同步最高分
func (s *Session) AddScore(points int) {
	s.Score += points
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
}

// LoseLife 失去一条命
// 返回 true 表示还有剩余生命；最后一条命不在这里扣除，由 EndGame 归零
func (s *Session) LoseLife() bool {
	if s.Lives > 1 {
		s.Lives--
		return true
	}
	return false
}

// NextStage 进入下一关：关卡号加一、清空物品记录；连击倍率保持，直到下一次球拍击球
func (s *Session) NextStage() {
	s.Stage++
	s.ItemLog = s.ItemLog[:0]
}

// RecordItem 记录获得的道具（最新的在前，超出长度丢弃最旧的）
func (s *Session) RecordItem(kind components.PowerUpKind) {
	if s.itemLogLength <= 0 {
		return
	}
	if len(s.ItemLog) < s.itemLogLength {
		s.ItemLog = append(s.ItemLog, 0)
	}
	copy(s.ItemLog[1:], s.ItemLog[:len(s.ItemLog)-1])
	s.ItemLog[0] = kind
}
