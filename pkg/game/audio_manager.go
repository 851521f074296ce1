package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/tennisbreak/pkg/config"
)

// AudioManager 音频管理器
// 职责：
//   - 实现 CueSink，接收模拟发出的音效提示
//   - 首次遇到某个提示时合成 PCM 并缓存播放器
//   - 同一时间只播放一段旋律，新旋律会打断旧旋律
//
// 所有失败都只记录日志，不影响模拟。audio.Context 为 nil 时进入静音模式。
type AudioManager struct {
	context *audio.Context
	cfg     config.AudioConfig

	tonePlayers   map[Cue]*audio.Player     // 单音效播放器缓存
	melodyPlayers map[CueKind]*audio.Player // 旋律播放器缓存
	currentMelody *audio.Player
	muted         bool
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，nil 表示静音
//   - cfg: 音效配置（开关、主音量、采样率）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, cfg config.AudioConfig) *AudioManager {
	return &AudioManager{
		context:       ctx,
		cfg:           cfg,
		tonePlayers:   make(map[Cue]*audio.Player),
		melodyPlayers: make(map[CueKind]*audio.Player),
		muted:         !cfg.Enabled,
	}
}

// Emit 实现 CueSink：播放提示对应的声音
func (am *AudioManager) Emit(cue Cue) {
	if am.context == nil || am.muted {
		return
	}

	if _, isMelody := melodyFor(cue.Kind); isMelody {
		am.playMelody(cue.Kind)
		return
	}

	player := am.getTonePlayer(cue)
	if player == nil {
		return
	}
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", cue.Kind, err)
		return
	}
	player.Play()
}

// playMelody 播放旋律，打断正在播放的旋律
func (am *AudioManager) playMelody(kind CueKind) {
	am.StopMelody()

	player, ok := am.melodyPlayers[kind]
	if !ok {
		pcm := SynthesizeCue(Cue{Kind: kind}, am.cfg.SampleRate, am.cfg.Volume)
		if len(pcm) == 0 {
			log.Printf("[AudioManager] Warning: Empty melody %s", kind)
			return
		}
		player = am.context.NewPlayerFromBytes(pcm)
		am.melodyPlayers[kind] = player
	}

	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind melody %s: %v", kind, err)
		return
	}
	player.Play()
	am.currentMelody = player
}

// StopMelody 停止当前旋律
func (am *AudioManager) StopMelody() {
	if am.currentMelody != nil {
		am.currentMelody.Pause()
		am.currentMelody = nil
	}
}

// SetMuted 切换静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if muted {
		am.StopMelody()
	}
	log.Printf("[AudioManager] Muted: %v", muted)
}

// Muted 是否静音
func (am *AudioManager) Muted() bool {
	return am.muted || am.context == nil
}

// getTonePlayer 获取或合成单音效播放器
func (am *AudioManager) getTonePlayer(cue Cue) *audio.Player {
	if player, exists := am.tonePlayers[cue]; exists {
		return player
	}

	pcm := SynthesizeCue(cue, am.cfg.SampleRate, am.cfg.Volume)
	if len(pcm) == 0 {
		log.Printf("[AudioManager] Warning: No sound for cue %s", cue.Kind)
		return nil
	}
	player := am.context.NewPlayerFromBytes(pcm)
	am.tonePlayers[cue] = player
	return player
}

// Preload 预先合成所有固定音调的提示，避免首次播放时卡顿
func (am *AudioManager) Preload() {
	if am.context == nil {
		return
	}
	for kind := CueKind(0); kind < cueKindCount; kind++ {
		if _, isMelody := melodyFor(kind); isMelody || kind == CueBrickHit {
			continue
		}
		am.getTonePlayer(Cue{Kind: kind})
	}
	log.Printf("[AudioManager] Preloaded %d tones", len(am.tonePlayers))
}
