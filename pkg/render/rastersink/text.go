package rastersink

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

// drawText renders a text layer. Multiline content wraps at the box
// width; single lines honor colored spans by drawing each run with its
// own fill. Text stroke paint is ignored - glyphs only fill.
func (s *Surface) drawText(t *scene.Text, res resolve.Resolved) error {
	size, err := t.FontSize().Resolve(geom.AxisY, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q font size: %w", t.ID(), err)
	}
	face, err := s.fonts.Face(t.Family(), t.Weight(), t.Italic(), size)
	if err != nil {
		return fmt.Errorf("layer %q: %w", t.ID(), err)
	}

	base, err := textColor(t)
	if err != nil {
		return fmt.Errorf("layer %q: %w", t.ID(), err)
	}
	base = withOpacity(base, t.Opacity())

	var drawErr error
	s.withTransform(t, res.Origin, func() {
		s.dc.SetFontFace(face)
		s.dc.SetColor(base)

		if t.Multiline() && res.W > 0 {
			align := ggAlign(t.Align())
			s.dc.DrawStringWrapped(t.Content(), res.Origin.X, res.Origin.Y, 0, 0, res.W, 1.5, align)
			return
		}
		drawErr = s.drawLine(t, res, base)
	})
	return drawErr
}

// drawLine draws single-line content as colored runs. Runs derive from
// the span list: each rune takes the last span covering it, unspanned
// runes take the base color.
func (s *Surface) drawLine(t *scene.Text, res resolve.Resolved, base color.NRGBA) error {
	runs, err := splitRuns(t, base)
	if err != nil {
		return err
	}

	total := 0.0
	widths := make([]float64, len(runs))
	for i, run := range runs {
		w, _ := s.dc.MeasureString(run.text)
		widths[i] = w
		total += w
	}

	x := res.Origin.X
	if res.W > 0 {
		switch t.Align() {
		case scene.AlignCenter:
			x += (res.W - total) / 2
		case scene.AlignRight:
			x += res.W - total
		}
	}

	for i, run := range runs {
		s.dc.SetColor(withOpacity(run.color, t.Opacity()))
		s.dc.DrawStringAnchored(run.text, x, res.Origin.Y, 0, 0.8)
		x += widths[i]
	}
	return nil
}

type textRun struct {
	text  string
	color color.NRGBA
}

// splitRuns cuts the content into maximal same-colored rune runs.
func splitRuns(t *scene.Text, base color.NRGBA) ([]textRun, error) {
	content := []rune(t.Content())
	if len(content) == 0 {
		return nil, nil
	}

	colors := make([]color.NRGBA, len(content))
	for i := range colors {
		colors[i] = base
	}
	for _, span := range t.Spans() {
		c, err := scene.ParseColor(span.Color)
		if err != nil {
			return nil, fmt.Errorf("span [%d:%d): %w", span.Start, span.End, err)
		}
		for i := max(span.Start, 0); i < min(span.End, len(content)); i++ {
			colors[i] = c
		}
	}

	var runs []textRun
	start := 0
	for i := 1; i <= len(content); i++ {
		if i == len(content) || colors[i] != colors[start] {
			runs = append(runs, textRun{text: string(content[start:i]), color: colors[start]})
			start = i
		}
	}
	return runs, nil
}

// textColor picks the glyph fill. Gradient and pattern paints have no
// per-glyph rasterization; gradients fall back to their midpoint color,
// patterns and missing paint to black.
func textColor(t *scene.Text) (color.NRGBA, error) {
	switch p := t.Fill().(type) {
	case *scene.Solid:
		return p.RGBA()
	case *scene.Gradient:
		return p.At(0.5)
	case nil:
		return color.NRGBA{A: 255}, nil
	}
	return color.NRGBA{A: 255}, nil
}

func ggAlign(a scene.TextAlign) gg.Align {
	switch a {
	case scene.AlignCenter:
		return gg.AlignCenter
	case scene.AlignRight:
		return gg.AlignRight
	}
	return gg.AlignLeft
}
