package utils

import "testing"

func TestClamp01(t *testing.T) {
	if Clamp01(-0.3) != 0 {
		t.Error("negative clamps to 0")
	}
	if Clamp01(1.7) != 1 {
		t.Error("above one clamps to 1")
	}
	if Clamp01(0.42) != 0.42 {
		t.Error("in-range value unchanged")
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(0.875); got != 0.88 {
		t.Errorf("got %v", got)
	}
	if got := Round2(0.874); got != 0.87 {
		t.Errorf("got %v", got)
	}
	if got := Round2(1.0); got != 1.0 {
		t.Errorf("got %v", got)
	}
}
