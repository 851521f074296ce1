package utils

import "testing"

func TestInputTrackerObserve(t *testing.T) {
	tracker := NewInputTracker()

	steps := []struct {
		x, y  int
		moved bool
	}{
		{0, 0, true}, // 第一次出现总是视为移动
		{0, 0, false},
		{10, 0, true},
		{10, 0, false},
		{10, 5, true},
	}

	for i, s := range steps {
		if got := tracker.observe(s.x, s.y); got != s.moved {
			t.Errorf("Step %d (%d,%d): expected moved=%v, got %v", i, s.x, s.y, s.moved, got)
		}
	}
}
