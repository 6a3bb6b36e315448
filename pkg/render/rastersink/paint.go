package rastersink

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/scene"
)

// ErrNoPaint is returned when a drawable layer carries neither fill nor
// stroke paint.
var ErrNoPaint = errors.New("rastersink: layer has no paint")

// paintShape fills and strokes the current gg path using the layer's
// paints, then clears it. The path must already be traced.
func (s *Surface) paintShape(l scene.Layer, rect geom.Rect) error {
	fill := l.Fill()
	stroke, strokeWidth := l.Stroke()
	if fill == nil && stroke == nil {
		s.dc.ClearPath()
		return fmt.Errorf("%w: %q", ErrNoPaint, l.ID())
	}

	if fill != nil {
		if err := s.setFillPaint(l, fill, rect); err != nil {
			s.dc.ClearPath()
			return err
		}
		if stroke != nil {
			s.dc.FillPreserve()
		} else {
			s.dc.Fill()
		}
	}

	if stroke != nil {
		if err := s.setStrokePaint(l, stroke, rect); err != nil {
			s.dc.ClearPath()
			return err
		}
		width, err := strokeWidth.Resolve(geom.AxisX, float64(s.w), float64(s.h))
		if err != nil {
			s.dc.ClearPath()
			return fmt.Errorf("layer %q stroke width: %w", l.ID(), err)
		}
		s.dc.SetLineWidth(max(width, 1))
		s.dc.Stroke()
	}
	return nil
}

func (s *Surface) setFillPaint(l scene.Layer, p scene.Paint, rect geom.Rect) error {
	return s.setPaint(l, p, rect, s.dc.SetFillStyle)
}

func (s *Surface) setStrokePaint(l scene.Layer, p scene.Paint, rect geom.Rect) error {
	return s.setPaint(l, p, rect, s.dc.SetStrokeStyle)
}

// setPaint converts a scene paint into a gg pattern and installs it via
// apply. The layer's opacity multiplies into solid and gradient colors;
// image patterns draw at full alpha.
func (s *Surface) setPaint(l scene.Layer, p scene.Paint, rect geom.Rect, apply func(gg.Pattern)) error {
	switch paint := p.(type) {
	case *scene.Solid:
		c, err := paint.RGBA()
		if err != nil {
			return fmt.Errorf("layer %q: %w", l.ID(), err)
		}
		apply(gg.NewSolidPattern(withOpacity(c, l.Opacity())))
		return nil

	case *scene.Gradient:
		if err := paint.Validate(); err != nil {
			return fmt.Errorf("layer %q: %w", l.ID(), err)
		}
		switch paint.Shape {
		case scene.GradientLinear:
			grad := linearGradient(paint, rect)
			if err := addStops(grad, paint, l.Opacity()); err != nil {
				return fmt.Errorf("layer %q: %w", l.ID(), err)
			}
			apply(grad)
		case scene.GradientRadial:
			c := rect.Center()
			r := math.Hypot(rect.W, rect.H) / 2
			grad := gg.NewRadialGradient(c.X, c.Y, 0, c.X, c.Y, r)
			if err := addStops(grad, paint, l.Opacity()); err != nil {
				return fmt.Errorf("layer %q: %w", l.ID(), err)
			}
			apply(grad)
		case scene.GradientConic:
			img, err := conicImage(paint, rect, l.Opacity())
			if err != nil {
				return fmt.Errorf("layer %q: %w", l.ID(), err)
			}
			apply(gg.NewSurfacePattern(img, gg.RepeatNone))
		}
		return nil

	case *scene.Pattern:
		tile, err := s.patternTile(paint, rect)
		if err != nil {
			return fmt.Errorf("layer %q: %w", l.ID(), err)
		}
		apply(gg.NewSurfacePattern(tile, repeatOp(paint.Repeat)))
		return nil
	}
	return fmt.Errorf("layer %q: unknown paint %T", l.ID(), p)
}

// linearGradient places the gradient axis through the rect center at
// the paint's angle. Zero degrees runs left to right.
func linearGradient(g *scene.Gradient, rect geom.Rect) gg.Gradient {
	rad := g.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	// Length of the rect's projection onto the gradient axis.
	length := math.Abs(rect.W*cos) + math.Abs(rect.H*sin)
	c := rect.Center()
	return gg.NewLinearGradient(
		c.X-cos*length/2, c.Y-sin*length/2,
		c.X+cos*length/2, c.Y+sin*length/2,
	)
}

func addStops(grad gg.Gradient, g *scene.Gradient, opacity float64) error {
	for _, stop := range g.Stops {
		c, err := scene.ParseColor(stop.Color)
		if err != nil {
			return err
		}
		grad.AddColorStop(stop.Offset, withOpacity(c, opacity))
	}
	return nil
}

// conicImage rasterizes a conic sweep into a rect-sized image. gg has no
// conic primitive, so the sweep is sampled per pixel through the
// gradient's own stop interpolation.
func conicImage(g *scene.Gradient, rect geom.Rect, opacity float64) (image.Image, error) {
	w := max(int(math.Ceil(rect.W)), 1)
	h := max(int(math.Ceil(rect.H)), 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	start := g.Angle * math.Pi / 180
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			angle := math.Atan2(float64(y)+0.5-cy, float64(x)+0.5-cx) - start
			t := math.Mod(angle/(2*math.Pi)+1, 1)
			c, err := g.At(t)
			if err != nil {
				return nil, err
			}
			img.SetRGBA(x, y, toRGBA(withOpacity(c, opacity)))
		}
	}
	// The pattern repeats from the surface origin; shift so the sweep
	// sits under the painted rect.
	return &offsetImage{img: img, dx: int(rect.X), dy: int(rect.Y)}, nil
}

// offsetImage re-registers an image's bounds so a surface pattern lines
// up with the painted rect instead of the canvas origin.
type offsetImage struct {
	img    *image.RGBA
	dx, dy int
}

func (o *offsetImage) ColorModel() color.Model { return o.img.ColorModel() }

func (o *offsetImage) Bounds() image.Rectangle {
	return o.img.Bounds().Add(image.Pt(o.dx, o.dy))
}

func (o *offsetImage) At(x, y int) color.Color { return o.img.At(x-o.dx, y-o.dy) }

// patternTile produces the tile image for a pattern paint. A sub-layer
// tile renders through a nested surface sized to its own resolved box;
// otherwise the source file loads from disk.
func (s *Surface) patternTile(p *scene.Pattern, rect geom.Rect) (image.Image, error) {
	if p.Tile != nil {
		return s.renderTile(p.Tile, rect)
	}
	img, err := imaging.Open(p.Source)
	if err != nil {
		return nil, fmt.Errorf("load pattern %s: %w", p.Source, err)
	}
	return img, nil
}

func repeatOp(r scene.PatternRepeat) gg.RepeatOp {
	switch r {
	case scene.RepeatX:
		return gg.RepeatX
	case scene.RepeatY:
		return gg.RepeatY
	case scene.RepeatNone:
		return gg.RepeatNone
	}
	return gg.RepeatBoth
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*max(opacity, 0) + 0.5)
	return c
}

func toRGBA(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
