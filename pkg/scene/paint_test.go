package scene

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{in: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{in: "#f00", want: color.NRGBA{R: 255, A: 255}},
		{in: "#00ff0080", want: color.NRGBA{G: 255, A: 128}},
		{in: "red", want: color.NRGBA{R: 255, A: 255}},
		{in: "Tomato", want: color.NRGBA{R: 255, G: 99, B: 71, A: 255}},
		{in: " white ", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12345", "#gggggg", "notacolor"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestGradientValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       *Gradient
		wantErr bool
	}{
		{
			name: "valid two stop",
			g:    LinearGradient(90, Stop{0, "#000"}, Stop{1, "#fff"}),
		},
		{
			name: "equal offsets allowed",
			g:    RadialGradient(Stop{0, "red"}, Stop{0.5, "green"}, Stop{0.5, "blue"}, Stop{1, "white"}),
		},
		{
			name:    "no stops",
			g:       LinearGradient(0),
			wantErr: true,
		},
		{
			name:    "offset out of range",
			g:       LinearGradient(0, Stop{-0.1, "red"}, Stop{1, "blue"}),
			wantErr: true,
		},
		{
			name:    "decreasing offsets",
			g:       LinearGradient(0, Stop{0.8, "red"}, Stop{0.2, "blue"}),
			wantErr: true,
		},
		{
			name:    "bad stop color",
			g:       LinearGradient(0, Stop{0, "nope"}, Stop{1, "blue"}),
			wantErr: true,
		},
		{
			name:    "unknown shape",
			g:       &Gradient{Shape: "diamond", Stops: []Stop{{0, "red"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidGradient) {
				t.Errorf("Validate() error = %v, want ErrInvalidGradient in chain", err)
			}
		})
	}
}

func TestGradientAt(t *testing.T) {
	g := LinearGradient(0, Stop{0, "#000000"}, Stop{1, "#ffffff"})

	start, err := g.At(0)
	if err != nil {
		t.Fatalf("At(0) error = %v", err)
	}
	if start.R != 0 || start.G != 0 || start.B != 0 {
		t.Errorf("At(0) = %+v, want black", start)
	}

	end, _ := g.At(1)
	if end.R != 255 || end.G != 255 || end.B != 255 {
		t.Errorf("At(1) = %+v, want white", end)
	}

	mid, _ := g.At(0.5)
	if mid.R < 120 || mid.R > 135 {
		t.Errorf("At(0.5).R = %d, want mid gray", mid.R)
	}

	// Clamping outside the run.
	under, _ := g.At(-2)
	if under != start {
		t.Errorf("At(-2) = %+v, want clamp to At(0) %+v", under, start)
	}
}

func TestGradientAtDuplicateOffsetLaterWins(t *testing.T) {
	g := LinearGradient(0, Stop{0, "#000000"}, Stop{1, "#ff0000"}, Stop{1, "#00ff00"})

	got, err := g.At(1)
	if err != nil {
		t.Fatalf("At(1) error = %v", err)
	}
	if got.G != 255 || got.R != 0 {
		t.Errorf("At(1) = %+v, want the later stop #00ff00", got)
	}
}

func TestPaintImplementations(t *testing.T) {
	// Compile-time coverage that each paint satisfies the interface.
	paints := []Paint{
		SolidPaint("red"),
		LinearGradient(45, Stop{0, "red"}, Stop{1, "blue"}),
		PatternPaint("tile.png", RepeatBoth),
	}
	if len(paints) != 3 {
		t.Fatalf("expected 3 paints, got %d", len(paints))
	}
}
