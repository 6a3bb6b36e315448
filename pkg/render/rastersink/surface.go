// Package rastersink implements the render surface over fogleman/gg.
// It turns resolved layers into pixels: shapes, curves, text runs and
// image placement all go through one gg context whose backing image the
// render manager encodes afterwards.
package rastersink

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/layercake/pkg/fonts"
	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/render/sink"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

// ErrUnknownLayer is returned by [Surface.Draw] for concrete layer types
// the sink has no draw routine for.
var ErrUnknownLayer = errors.New("rastersink: unknown layer type")

var _ sink.Surface = (*Surface)(nil)

// Surface draws layers onto an RGBA pixel buffer through a gg context.
// Construct with [New]; the zero value is not usable.
type Surface struct {
	dc    *gg.Context
	fonts *fonts.Registry
	w, h  int
}

// New returns a transparent surface of the given pixel dimensions. The
// registry serves the faces text layers request; nil falls back to the
// embedded defaults.
func New(w, h int, reg *fonts.Registry) *Surface {
	if reg == nil {
		reg = fonts.Default()
	}
	return &Surface{dc: gg.NewContext(w, h), fonts: reg, w: w, h: h}
}

// Context returns the live gg context. Callers drawing on it directly
// share the surface's pixel buffer.
func (s *Surface) Context() *gg.Context { return s.dc }

// Image returns the backing pixel buffer. The buffer is shared, not
// copied; encode or clone it before the next frame mutates it.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// Snapshot returns an independent copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	src := s.dc.Image().(*image.RGBA)
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Reset blanks the surface back to fully transparent.
func (s *Surface) Reset() {
	src := s.dc.Image().(*image.RGBA)
	draw.Draw(src, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Draw renders one layer, dispatching on its concrete type.
func (s *Surface) Draw(op sink.Op) error {
	switch l := op.Layer.(type) {
	case *scene.Morph:
		return s.drawMorph(l, op.Resolved)
	case *scene.Text:
		return s.drawText(l, op.Resolved)
	case *scene.Image:
		return s.drawImage(l, op.Resolved)
	case *scene.Line:
		return s.drawStroked(l, op.Resolved, l.Thickness(), func() {
			pts := op.Resolved.Points
			s.dc.MoveTo(pts[0].X, pts[0].Y)
			s.dc.LineTo(pts[1].X, pts[1].Y)
		})
	case *scene.Quadratic:
		return s.drawStroked(l, op.Resolved, l.Thickness(), func() {
			pts := op.Resolved.Points
			s.dc.MoveTo(pts[0].X, pts[0].Y)
			s.dc.QuadraticTo(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		})
	case *scene.Bezier:
		return s.drawStroked(l, op.Resolved, l.Thickness(), func() {
			pts := op.Resolved.Points
			s.dc.MoveTo(pts[0].X, pts[0].Y)
			s.dc.CubicTo(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
		})
	case *scene.Path:
		return s.drawPath(l, op.Resolved)
	case *scene.Clear:
		s.clearRect(op.Resolved.Rect())
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownLayer, op.Layer)
	}
}

// withTransform wraps fn in the layer's affine transform, applied about
// the anchored draw origin. Raw matrices decompose into rotation and
// scale; a shear component has no gg primitive and is dropped.
func (s *Surface) withTransform(l scene.Layer, origin geom.Point, fn func()) {
	tr := l.Transform()
	if tr.Identity() {
		fn()
		return
	}

	s.dc.Push()
	c := tr.Coefficients()
	rot := math.Atan2(c[1], c[0])
	sx := math.Hypot(c[0], c[1])
	sy := sx
	if sx != 0 {
		sy = (c[0]*c[3] - c[1]*c[2]) / sx
	}
	s.dc.Translate(c[4], c[5])
	s.dc.RotateAbout(rot, origin.X, origin.Y)
	s.dc.ScaleAbout(sx, sy, origin.X, origin.Y)
	fn()
	s.dc.Pop()
}

func (s *Surface) drawMorph(m *scene.Morph, res resolve.Resolved) error {
	rect := res.Rect()
	radius, err := m.Radius().Resolve(geom.AxisX, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q radius: %w", m.ID(), err)
	}
	radius = min(radius, min(rect.W, rect.H)/2)

	var paintErr error
	s.withTransform(m, res.Origin, func() {
		switch {
		case radius <= 0:
			s.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
		case radius >= min(rect.W, rect.H)/2:
			s.dc.DrawEllipse(rect.X+rect.W/2, rect.Y+rect.H/2, rect.W/2, rect.H/2)
		default:
			s.dc.DrawRoundedRectangle(rect.X, rect.Y, rect.W, rect.H, radius)
		}
		paintErr = s.paintShape(m, rect)
	})
	return paintErr
}

func (s *Surface) drawPath(p *scene.Path, res resolve.Resolved) error {
	var err error
	s.withTransform(p, res.Origin, func() {
		if err = tracePath(s.dc, p.Data(), res.Origin.X, res.Origin.Y); err != nil {
			err = fmt.Errorf("layer %q: %w", p.ID(), err)
			return
		}
		err = s.paintShape(p, res.Rect())
	})
	return err
}

// drawStroked traces a vertex-based layer and strokes it. Fill paint
// doubles as the stroke color when no explicit stroke is set.
func (s *Surface) drawStroked(l scene.Layer, res resolve.Resolved, thickness geom.Value, trace func()) error {
	if len(res.Points) == 0 {
		return nil
	}
	width, err := thickness.Resolve(geom.AxisX, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q thickness: %w", l.ID(), err)
	}

	paint := l.Fill()
	if sp, _ := l.Stroke(); sp != nil {
		paint = sp
	}

	s.withTransform(l, res.Origin, func() {
		trace()
		if err = s.setStrokePaint(l, paint, res.Rect()); err != nil {
			s.dc.ClearPath()
			return
		}
		s.dc.SetLineWidth(max(width, 0))
		s.dc.Stroke()
	})
	return err
}

func (s *Surface) drawImage(l *scene.Image, res resolve.Resolved) error {
	src := l.Loaded()
	if src == nil {
		loaded, err := imaging.Open(l.Source())
		if err != nil {
			return fmt.Errorf("layer %q: load image %s: %w", l.ID(), l.Source(), err)
		}
		src = loaded
	}

	rect := res.Rect()
	w, h := int(math.Round(rect.W)), int(math.Round(rect.H))
	if w <= 0 || h <= 0 {
		return nil
	}

	fitted := fitImage(src, w, h, l.Fit())

	radius, err := l.Radius().Resolve(geom.AxisX, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q radius: %w", l.ID(), err)
	}

	s.withTransform(l, res.Origin, func() {
		s.dc.Push()
		if radius > 0 {
			s.dc.DrawRoundedRectangle(rect.X, rect.Y, rect.W, rect.H, min(radius, min(rect.W, rect.H)/2))
			s.dc.Clip()
		}
		s.dc.DrawImage(fitted, int(math.Round(rect.X)), int(math.Round(rect.Y)))
		if radius > 0 {
			s.dc.ResetClip()
		}
		s.dc.Pop()
	})
	return nil
}

// fitImage maps source content into a w x h box per the fit mode.
func fitImage(src image.Image, w, h int, fit scene.ImageFit) image.Image {
	switch fit {
	case scene.FitStretch:
		return imaging.Resize(src, w, h, imaging.Lanczos)
	case scene.FitContain:
		return imaging.Fit(src, w, h, imaging.Lanczos)
	case scene.FitNone:
		return src
	default: // FitCover and unset
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	}
}

func (s *Surface) renderTile(tile scene.Layer, rect geom.Rect) (image.Image, error) {
	return RenderTile(tile, rect.W, rect.H, s.fonts)
}

// RenderTile rasterizes a pattern's sub-layer tile on a surface sized to
// the tile's own resolved box. The tile resolves against the painted
// area, so percent-sized tiles scale with the region they fill. Both
// sinks use this for tiled paints.
func RenderTile(tile scene.Layer, areaW, areaH float64, reg *fonts.Registry) (image.Image, error) {
	result, err := resolve.Resolve([]scene.Layer{tile}, areaW, areaH)
	if err != nil {
		return nil, fmt.Errorf("resolve tile %q: %w", tile.ID(), err)
	}
	res, _ := result.Get(tile.ID())

	w := max(int(math.Ceil(res.W)), 1)
	h := max(int(math.Ceil(res.H)), 1)
	nested := New(w, h, reg)

	// Shift the tile to the nested surface's origin.
	shifted := res
	shifted.X -= res.Origin.X
	shifted.Y -= res.Origin.Y
	for i := range shifted.Points {
		shifted.Points[i].X -= res.Origin.X
		shifted.Points[i].Y -= res.Origin.Y
	}
	shifted.Origin = geom.Point{}

	if err := nested.Draw(sink.Op{Layer: tile, Resolved: shifted}); err != nil {
		return nil, fmt.Errorf("render tile %q: %w", tile.ID(), err)
	}
	return nested.Image(), nil
}

// clearRect blanks a region, discarding everything drawn below it.
func (s *Surface) clearRect(r geom.Rect) {
	img := s.dc.Image().(*image.RGBA)
	region := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.MaxX())), int(math.Ceil(r.MaxY())),
	).Intersect(img.Bounds())
	draw.Draw(img, region, image.Transparent, image.Point{}, draw.Src)
}
