package game

// CueKind 音效提示种类
//
// 模拟层只负责发出提示，由独立的音频协作者决定是否以及如何播放。
type CueKind int

const (
	// CueIntro 开局旋律
	CueIntro CueKind = iota
	// CueStageClear 过关旋律
	CueStageClear
	// CueLifeLost 失去一条命
	CueLifeLost
	// CueGameOver 游戏结束旋律
	CueGameOver
	// CueWall 撞到侧墙或顶墙（低音）
	CueWall
	// CuePaddle 击中球拍
	CuePaddle
	// CueShield 撞到底部护盾
	CueShield
	// CueBrickHit 击中砖块但未击碎，Param 为剩余耐久
	CueBrickHit
	// CueBrickBreak 击碎砖块
	CueBrickBreak
	// CuePickup 接到道具
	CuePickup
	// CueLaunch 发射球
	CueLaunch

	cueKindCount
)

// String 返回提示名称（日志使用）
func (k CueKind) String() string {
	switch k {
	case CueIntro:
		return "intro"
	case CueStageClear:
		return "stage_clear"
	case CueLifeLost:
		return "life_lost"
	case CueGameOver:
		return "game_over"
	case CueWall:
		return "wall"
	case CuePaddle:
		return "paddle"
	case CueShield:
		return "shield"
	case CueBrickHit:
		return "brick_hit"
	case CueBrickBreak:
		return "brick_break"
	case CuePickup:
		return "pickup"
	case CueLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// Cue 一次音效提示
type Cue struct {
	Kind  CueKind
	Param int
}

// CueSink 接收音效提示
//
// Emit 必须立即返回，不得阻塞模拟，也不返回结果。
type CueSink interface {
	Emit(cue Cue)
}

// NopCueSink 丢弃所有提示（静音模式）
type NopCueSink struct{}

// Emit 实现 CueSink
func (NopCueSink) Emit(Cue) {}

// CueRecorder 记录所有提示，供测试和调试工具使用
type CueRecorder struct {
	Cues []Cue
}

// Emit 实现 CueSink
func (r *CueRecorder) Emit(cue Cue) {
	r.Cues = append(r.Cues, cue)
}

// Count 统计某种提示出现的次数
func (r *CueRecorder) Count(kind CueKind) int {
	n := 0
	for _, c := range r.Cues {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Last 返回最后一个提示
func (r *CueRecorder) Last() (Cue, bool) {
	if len(r.Cues) == 0 {
		return Cue{}, false
	}
	return r.Cues[len(r.Cues)-1], true
}

// Reset 清空记录
func (r *CueRecorder) Reset() {
	r.Cues = r.Cues[:0]
}
