package game

import (
	"testing"
	"time"

	"github.com/decker502/tennisbreak/pkg/config"
)

func TestToneForCoversEveryCue(t *testing.T) {
	for kind := CueKind(0); kind < cueKindCount; kind++ {
		_, isTone := toneFor(Cue{Kind: kind, Param: 2})
		_, isMelody := melodyFor(kind)
		if isTone == isMelody {
			t.Errorf("%s: expected exactly one of tone/melody, got tone=%v melody=%v", kind, isTone, isMelody)
		}
	}
}

func TestBrickHitPitch(t *testing.T) {
	tests := []struct {
		hp   int
		want float64
	}{
		{2, 400},
		{1, 500},
	}
	for _, tt := range tests {
		tn, _ := toneFor(Cue{Kind: CueBrickHit, Param: tt.hp})
		if tn.freq != tt.want {
			t.Errorf("hp=%d: expected %.0f Hz, got %.0f Hz", tt.hp, tt.want, tn.freq)
		}
	}
}

func TestSynthesizeCueLength(t *testing.T) {
	const rate = 48000
	const bytesPerFrame = 4

	pcm := SynthesizeCue(Cue{Kind: CueWall}, rate, 1)
	want := rate * 50 / 1000 * bytesPerFrame
	if len(pcm) != want {
		t.Errorf("Wall tone: expected %d bytes, got %d", want, len(pcm))
	}

	var total time.Duration
	for _, n := range melodyIntro {
		total += n.duration
	}
	pcm = SynthesizeCue(Cue{Kind: CueIntro}, rate, 1)
	want = 0
	for _, n := range melodyIntro {
		want += rate * int(n.duration/time.Millisecond) / 1000 * bytesPerFrame
	}
	if len(pcm) != want {
		t.Errorf("Intro melody (%v): expected %d bytes, got %d", total, want, len(pcm))
	}
}

func TestSynthesizeCueSilentAtZeroVolume(t *testing.T) {
	pcm := SynthesizeCue(Cue{Kind: CueBrickBreak}, 48000, 0)
	if len(pcm) == 0 {
		t.Fatal("Expected samples even when muted")
	}
	for i, b := range pcm {
		if b != 0 {
			t.Fatalf("Expected silence, found non-zero byte at %d", i)
		}
	}
}

func TestSynthesizeCueAudible(t *testing.T) {
	pcm := SynthesizeCue(Cue{Kind: CuePickup}, 48000, 1)
	nonZero := false
	for _, b := range pcm {
		if b != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("Expected audible samples")
	}
}

func TestAudioManagerSilentWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, config.DefaultBreakoutConfig().Audio)
	if !am.Muted() {
		t.Error("Manager without context should report muted")
	}
	// 不应 panic
	am.Emit(Cue{Kind: CueIntro})
	am.Emit(Cue{Kind: CueBrickHit, Param: 1})
	am.Preload()
}
