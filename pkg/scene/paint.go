package scene

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	// ErrInvalidColor is returned by [ParseColor] for strings that are
	// neither a hex triplet nor a known color name.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidGradient is returned by [Gradient.Validate] when the stop
	// list is empty, an offset falls outside [0, 1], or offsets decrease.
	ErrInvalidGradient = errors.New("invalid gradient")
)

// Paint describes how a layer area is filled or stroked. The three
// implementations are [Solid], [Gradient] and [Pattern].
type Paint interface {
	isPaint()
}

// Solid paints a single color.
type Solid struct {
	Color string
}

// SolidPaint returns a solid paint for a hex triplet ("#1e6fd9") or a
// named color ("tomato").
func SolidPaint(color string) *Solid { return &Solid{Color: color} }

func (*Solid) isPaint() {}

// RGBA parses the color string. See [ParseColor] for accepted forms.
func (s *Solid) RGBA() (color.NRGBA, error) { return ParseColor(s.Color) }

// GradientShape selects the gradient geometry.
type GradientShape string

const (
	GradientLinear GradientShape = "linear"
	GradientRadial GradientShape = "radial"
	GradientConic  GradientShape = "conic"
)

// Stop is one color stop of a gradient. Offset is a fraction in [0, 1]
// of the gradient run.
type Stop struct {
	Offset float64
	Color  string
}

// Gradient paints a multi-stop blend. Angle applies to linear and conic
// shapes, in degrees. Stops must be ordered by non-decreasing offset;
// when two stops share an offset the later one wins.
type Gradient struct {
	Shape GradientShape
	Stops []Stop
	Angle float64
}

// LinearGradient returns a linear gradient paint at the given angle.
func LinearGradient(angle float64, stops ...Stop) *Gradient {
	return &Gradient{Shape: GradientLinear, Angle: angle, Stops: stops}
}

// RadialGradient returns a radial gradient paint centered on the layer.
func RadialGradient(stops ...Stop) *Gradient {
	return &Gradient{Shape: GradientRadial, Stops: stops}
}

// ConicGradient returns a conic gradient paint sweeping from the given
// start angle.
func ConicGradient(angle float64, stops ...Stop) *Gradient {
	return &Gradient{Shape: GradientConic, Angle: angle, Stops: stops}
}

func (*Gradient) isPaint() {}

// Validate checks the stop list: at least one stop, offsets within
// [0, 1] and monotonically non-decreasing, all colors parseable.
func (g *Gradient) Validate() error {
	switch g.Shape {
	case GradientLinear, GradientRadial, GradientConic:
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidGradient, g.Shape)
	}
	if len(g.Stops) == 0 {
		return fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	prev := 0.0
	for i, s := range g.Stops {
		if s.Offset < 0 || s.Offset > 1 {
			return fmt.Errorf("%w: stop %d offset %v outside [0, 1]", ErrInvalidGradient, i, s.Offset)
		}
		if s.Offset < prev {
			return fmt.Errorf("%w: stop %d offset %v decreases", ErrInvalidGradient, i, s.Offset)
		}
		prev = s.Offset
		if _, err := ParseColor(s.Color); err != nil {
			return fmt.Errorf("%w: stop %d: %v", ErrInvalidGradient, i, err)
		}
	}
	return nil
}

// At returns the blended color at fraction t of the gradient run,
// clamping t to [0, 1]. Blending happens in RGB space. Duplicate offsets
// resolve to the later stop.
func (g *Gradient) At(t float64) (color.NRGBA, error) {
	if len(g.Stops) == 0 {
		return color.NRGBA{}, fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	t = min(max(t, 0), 1)

	stops := make([]Stop, len(g.Stops))
	copy(stops, g.Stops)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })

	// Find the surrounding pair. Later stops win on equal offsets because
	// the stable sort keeps declaration order.
	lo := stops[0]
	hi := stops[len(stops)-1]
	for i := 0; i < len(stops); i++ {
		if stops[i].Offset <= t {
			lo = stops[i]
		}
		if stops[i].Offset >= t {
			hi = stops[i]
			break
		}
	}

	cLo, err := ParseColor(lo.Color)
	if err != nil {
		return color.NRGBA{}, err
	}
	if lo.Offset == hi.Offset {
		return cLo, nil
	}
	cHi, err := ParseColor(hi.Color)
	if err != nil {
		return color.NRGBA{}, err
	}

	frac := (t - lo.Offset) / (hi.Offset - lo.Offset)
	a, _ := colorful.MakeColor(color.NRGBA{R: cLo.R, G: cLo.G, B: cLo.B, A: 255})
	b, _ := colorful.MakeColor(color.NRGBA{R: cHi.R, G: cHi.G, B: cHi.B, A: 255})
	blended := a.BlendRgb(b, frac).Clamped()
	r8, g8, b8 := blended.RGB255()
	alpha := float64(cLo.A) + (float64(cHi.A)-float64(cLo.A))*frac
	return color.NRGBA{R: r8, G: g8, B: b8, A: uint8(alpha + 0.5)}, nil
}

// PatternRepeat selects how a pattern tile repeats across the painted area.
type PatternRepeat string

const (
	RepeatBoth PatternRepeat = "repeat"
	RepeatX    PatternRepeat = "repeat-x"
	RepeatY    PatternRepeat = "repeat-y"
	RepeatNone PatternRepeat = "no-repeat"
)

// Pattern paints a repeated tile. Source names an image file; Tile, when
// set, takes precedence and renders a sub-layer as the tile instead.
type Pattern struct {
	Source string
	Tile   Layer
	Repeat PatternRepeat
}

// PatternPaint returns a pattern paint tiling the image at source.
func PatternPaint(source string, repeat PatternRepeat) *Pattern {
	return &Pattern{Source: source, Repeat: repeat}
}

func (*Pattern) isPaint() {}

// ParseColor converts a color string to NRGBA. Accepted forms are hex
// triplets "#rgb", "#rrggbb" and "#rrggbbaa", and the SVG 1.1 color names
// ("tomato", "steelblue"). Matching of names ignores case.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
