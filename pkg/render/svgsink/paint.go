package svgsink

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/render/rastersink"
	"github.com/matzehuels/layercake/pkg/scene"
)

// ErrNoPaint is returned when a drawable layer carries neither fill nor
// stroke paint.
var ErrNoPaint = errors.New("svgsink: layer has no paint")

// paintAttrs renders the layer's fill and stroke as presentation
// attributes, registering defs as needed.
func (s *Surface) paintAttrs(l scene.Layer, rect geom.Rect) (string, error) {
	fill := l.Fill()
	stroke, strokeWidth := l.Stroke()
	if fill == nil && stroke == nil {
		return "", fmt.Errorf("%w: %q", ErrNoPaint, l.ID())
	}

	var b strings.Builder
	if fill != nil {
		ref, opacity, err := s.paintRef(l, fill, rect)
		if err != nil {
			return "", fmt.Errorf("layer %q: %w", l.ID(), err)
		}
		fmt.Fprintf(&b, ` fill="%s"%s`, ref, opacityAttr("fill-opacity", opacity))
	} else {
		b.WriteString(` fill="none"`)
	}

	if stroke != nil {
		ref, opacity, err := s.paintRef(l, stroke, rect)
		if err != nil {
			return "", fmt.Errorf("layer %q: %w", l.ID(), err)
		}
		width, err := strokeWidth.Resolve(geom.AxisX, float64(s.w), float64(s.h))
		if err != nil {
			return "", fmt.Errorf("layer %q stroke width: %w", l.ID(), err)
		}
		fmt.Fprintf(&b, ` stroke="%s"%s stroke-width="%s"`,
			ref, opacityAttr("stroke-opacity", opacity), num(max(width, 1)))
	}
	return b.String(), nil
}

// paintRef converts a paint into an attribute value: a hex color for
// solids, a url(#id) def reference for gradients and patterns. The
// returned opacity folds the color alpha and layer opacity for solids;
// def-backed paints bake opacity into their stops and return 1.
func (s *Surface) paintRef(l scene.Layer, p scene.Paint, rect geom.Rect) (string, float64, error) {
	switch paint := p.(type) {
	case *scene.Solid:
		c, err := paint.RGBA()
		if err != nil {
			return "", 0, err
		}
		return hexColor(c.R, c.G, c.B), float64(c.A) / 255 * clamp01(l.Opacity()), nil

	case *scene.Gradient:
		if err := paint.Validate(); err != nil {
			return "", 0, err
		}
		id, err := s.gradientDef(paint, rect, l.Opacity())
		if err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("url(#%s)", id), 1, nil

	case *scene.Pattern:
		id, err := s.patternDef(paint, rect)
		if err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("url(#%s)", id), clamp01(l.Opacity()), nil
	}
	return "", 0, fmt.Errorf("unknown paint %T", p)
}

// gradientDef registers a gradient def and returns its id. SVG 1.1 has
// no conic primitive, so conic sweeps degrade to a linear ramp at the
// same angle.
func (s *Surface) gradientDef(g *scene.Gradient, rect geom.Rect, opacity float64) (string, error) {
	id := s.nextID("grad")
	switch g.Shape {
	case scene.GradientRadial:
		c := rect.Center()
		r := math.Hypot(rect.W, rect.H) / 2
		fmt.Fprintf(&s.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`,
			id, num(c.X), num(c.Y), num(r))
	default:
		x1, y1, x2, y2 := gradientAxis(g.Angle, rect)
		fmt.Fprintf(&s.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, num(x1), num(y1), num(x2), num(y2))
	}

	for _, stop := range g.Stops {
		c, err := scene.ParseColor(stop.Color)
		if err != nil {
			return "", err
		}
		alpha := float64(c.A) / 255 * clamp01(opacity)
		fmt.Fprintf(&s.defs, `<stop offset="%s" stop-color="%s"%s/>`,
			num(stop.Offset), hexColor(c.R, c.G, c.B), opacityAttr("stop-opacity", alpha))
	}

	if g.Shape == scene.GradientRadial {
		s.defs.WriteString("</radialGradient>\n")
	} else {
		s.defs.WriteString("</linearGradient>\n")
	}
	return id, nil
}

// gradientAxis places the gradient axis through the rect center at the
// given angle in degrees. Zero runs left to right.
func gradientAxis(angle float64, rect geom.Rect) (x1, y1, x2, y2 float64) {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	length := math.Abs(rect.W*cos) + math.Abs(rect.H*sin)
	c := rect.Center()
	return c.X - cos*length/2, c.Y - sin*length/2,
		c.X + cos*length/2, c.Y + sin*length/2
}

// patternDef registers a pattern def wrapping the tile as an embedded
// PNG and returns its id. SVG patterns always tile both axes; single
// axis repeats stretch the tile box across the other axis instead.
func (s *Surface) patternDef(p *scene.Pattern, rect geom.Rect) (string, error) {
	var tile image.Image
	var err error
	if p.Tile != nil {
		tile, err = rastersink.RenderTile(p.Tile, rect.W, rect.H, nil)
	} else {
		tile, err = imaging.Open(p.Source)
		if err != nil {
			err = fmt.Errorf("load pattern %s: %w", p.Source, err)
		}
	}
	if err != nil {
		return "", err
	}

	b := tile.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	boxW, boxH := tw, th
	switch p.Repeat {
	case scene.RepeatX:
		boxH = float64(s.h)
	case scene.RepeatY:
		boxW = float64(s.w)
	case scene.RepeatNone:
		boxW, boxH = float64(s.w), float64(s.h)
	}

	data, err := encodePNG(tile)
	if err != nil {
		return "", err
	}

	id := s.nextID("pat")
	fmt.Fprintf(&s.defs,
		`<pattern id="%s" patternUnits="userSpaceOnUse" x="%s" y="%s" width="%s" height="%s"><image href="data:image/png;base64,%s" width="%s" height="%s"/></pattern>`+"\n",
		id, num(rect.X), num(rect.Y), num(boxW), num(boxH), data, num(tw), num(th))
	return id, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode tile: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func opacityAttr(name string, opacity float64) string {
	if opacity >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, num(max(opacity, 0)))
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clamp01(f float64) float64 { return min(max(f, 0), 1) }
