package cli

import "testing"

func TestAnimDuration(t *testing.T) {
	tests := []struct {
		frames, fps int
		want        float64
	}{
		{0, 0, 0},
		{24, 0, 0},
		{0, 12, 0},
		{24, 12, 2},
		{30, 30, 1},
	}

	for _, tt := range tests {
		if got := animDuration(tt.frames, tt.fps); got != tt.want {
			t.Errorf("animDuration(%d, %d) = %v, want %v", tt.frames, tt.fps, got, tt.want)
		}
	}
}
