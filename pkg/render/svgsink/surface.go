// Package svgsink implements the render surface as an SVG document
// builder. Layers append elements to the document body; paints that SVG
// cannot express inline (gradients, patterns) go into a shared defs
// block. Bytes returns the assembled document.
package svgsink

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/render/sink"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

// ErrUnknownLayer is returned by [Surface.Draw] for concrete layer types
// the sink has no element builder for.
var ErrUnknownLayer = errors.New("svgsink: unknown layer type")

var _ sink.Surface = (*Surface)(nil)

// Surface accumulates SVG elements. Construct with [New]; the zero
// value is not usable.
type Surface struct {
	w, h   int
	defs   bytes.Buffer
	body   bytes.Buffer
	defSeq int
}

// New returns an empty surface for a document of the given pixel
// dimensions.
func New(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

// Reset discards all accumulated elements and defs.
func (s *Surface) Reset() {
	s.defs.Reset()
	s.body.Reset()
	s.defSeq = 0
}

// Bytes assembles and returns the SVG document.
func (s *Surface) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		s.w, s.h, s.w, s.h)
	if s.defs.Len() > 0 {
		buf.WriteString("<defs>\n")
		buf.Write(s.defs.Bytes())
		buf.WriteString("</defs>\n")
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Draw appends one layer's element, dispatching on its concrete type.
func (s *Surface) Draw(op sink.Op) error {
	switch l := op.Layer.(type) {
	case *scene.Morph:
		return s.drawMorph(l, op.Resolved)
	case *scene.Text:
		return s.drawText(l, op.Resolved)
	case *scene.Image:
		return s.drawImage(l, op.Resolved)
	case *scene.Line:
		pts := op.Resolved.Points
		d := fmt.Sprintf("M %s %s L %s %s",
			num(pts[0].X), num(pts[0].Y), num(pts[1].X), num(pts[1].Y))
		return s.drawStroked(l, op.Resolved, l.Thickness(), d)
	case *scene.Quadratic:
		pts := op.Resolved.Points
		d := fmt.Sprintf("M %s %s Q %s %s %s %s",
			num(pts[0].X), num(pts[0].Y),
			num(pts[1].X), num(pts[1].Y), num(pts[2].X), num(pts[2].Y))
		return s.drawStroked(l, op.Resolved, l.Thickness(), d)
	case *scene.Bezier:
		pts := op.Resolved.Points
		d := fmt.Sprintf("M %s %s C %s %s %s %s %s %s",
			num(pts[0].X), num(pts[0].Y),
			num(pts[1].X), num(pts[1].Y),
			num(pts[2].X), num(pts[2].Y), num(pts[3].X), num(pts[3].Y))
		return s.drawStroked(l, op.Resolved, l.Thickness(), d)
	case *scene.Path:
		return s.drawPath(l, op.Resolved)
	case *scene.Clear:
		s.clearRect(op.Resolved.Rect())
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownLayer, op.Layer)
	}
}

func (s *Surface) drawMorph(m *scene.Morph, res resolve.Resolved) error {
	rect := res.Rect()
	radius, err := m.Radius().Resolve(geom.AxisX, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q radius: %w", m.ID(), err)
	}
	radius = min(radius, min(rect.W, rect.H)/2)

	paint, err := s.paintAttrs(m, rect)
	if err != nil {
		return err
	}
	tr := transformAttr(m, res.Origin)

	switch {
	case radius > 0 && radius >= min(rect.W, rect.H)/2:
		fmt.Fprintf(&s.body, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s%s/>`+"\n",
			num(rect.X+rect.W/2), num(rect.Y+rect.H/2), num(rect.W/2), num(rect.H/2), paint, tr)
	case radius > 0:
		fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s%s/>`+"\n",
			num(rect.X), num(rect.Y), num(rect.W), num(rect.H), num(radius), paint, tr)
	default:
		fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`+"\n",
			num(rect.X), num(rect.Y), num(rect.W), num(rect.H), paint, tr)
	}
	return nil
}

func (s *Surface) drawPath(p *scene.Path, res resolve.Resolved) error {
	paint, err := s.paintAttrs(p, res.Rect())
	if err != nil {
		return err
	}
	tr := transformAttr(p, res.Origin)
	// Path data is in layer-local coordinates; shift it to the draw
	// origin with a leading translate.
	shift := fmt.Sprintf(` transform="translate(%s %s)"`, num(res.Origin.X), num(res.Origin.Y))
	if tr != "" {
		shift = fmt.Sprintf(` transform="%s translate(%s %s)"`,
			strings.TrimSuffix(strings.TrimPrefix(tr, ` transform="`), `"`),
			num(res.Origin.X), num(res.Origin.Y))
	}
	fmt.Fprintf(&s.body, `<path d="%s"%s%s/>`+"\n", escape(p.Data()), paint, shift)
	return nil
}

// drawStroked emits a vertex-based layer as an unfilled path. Fill paint
// doubles as the stroke color when no explicit stroke is set.
func (s *Surface) drawStroked(l scene.Layer, res resolve.Resolved, thickness geom.Value, d string) error {
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
	ref, opacity, err := s.paintRef(l, paint, res.Rect())
	if err != nil {
		return fmt.Errorf("layer %q: %w", l.ID(), err)
	}

	fmt.Fprintf(&s.body, `<path d="%s" fill="none" stroke="%s"%s stroke-width="%s"%s/>`+"\n",
		d, ref, opacityAttr("stroke-opacity", opacity), num(max(width, 0)), transformAttr(l, res.Origin))
	return nil
}

// clearRect erases everything drawn so far inside the region by wrapping
// the accumulated body in a mask that blacks the region out.
func (s *Surface) clearRect(rect geom.Rect) {
	if s.body.Len() == 0 {
		return
	}
	id := s.nextID("clear")
	fmt.Fprintf(&s.defs, `<mask id="%s"><rect width="100%%" height="100%%" fill="white"/><rect x="%s" y="%s" width="%s" height="%s" fill="black"/></mask>`+"\n",
		id, num(rect.X), num(rect.Y), num(rect.W), num(rect.H))

	inner := s.body.String()
	s.body.Reset()
	fmt.Fprintf(&s.body, `<g mask="url(#%s)">`+"\n", id)
	s.body.WriteString(inner)
	s.body.WriteString("</g>\n")
}

func (s *Surface) nextID(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, s.defSeq)
	s.defSeq++
	return id
}

// transformAttr renders the layer's affine transform about its draw
// origin, or the empty string for identity.
func transformAttr(l scene.Layer, origin geom.Point) string {
	tr := l.Transform()
	if tr.Identity() {
		return ""
	}
	if tr.Matrix != nil {
		c := *tr.Matrix
		return fmt.Sprintf(` transform="matrix(%s %s %s %s %s %s)"`,
			num(c[0]), num(c[1]), num(c[2]), num(c[3]), num(c[4]), num(c[5]))
	}

	var parts []string
	if tr.TranslateX != 0 || tr.TranslateY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s %s)", num(tr.TranslateX), num(tr.TranslateY)))
	}
	if tr.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s %s %s)", num(tr.Rotate), num(origin.X), num(origin.Y)))
	}
	sx, sy := tr.ScaleX, tr.ScaleY
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	if sx != 1 || sy != 1 {
		parts = append(parts, fmt.Sprintf("translate(%s %s) scale(%s %s) translate(%s %s)",
			num(origin.X), num(origin.Y), num(sx), num(sy), num(-origin.X), num(-origin.Y)))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(` transform="%s"`, strings.Join(parts, " "))
}

// num formats a coordinate without trailing zero noise.
func num(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return strings.TrimRight(fmt.Sprintf("%.3f", f), "0")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
