package svgsink

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/layercake/pkg/fonts"
	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

// drawText emits a text element. Colored spans become tspans; multiline
// content splits on newlines, leaving soft wrapping to the viewer since
// SVG 1.1 has no wrap primitive.
func (s *Surface) drawText(t *scene.Text, res resolve.Resolved) error {
	size, err := t.FontSize().Resolve(geom.AxisY, float64(s.w), float64(s.h))
	if err != nil {
		return fmt.Errorf("layer %q font size: %w", t.ID(), err)
	}

	base, err := baseColor(t)
	if err != nil {
		return fmt.Errorf("layer %q: %w", t.ID(), err)
	}

	family := t.Family()
	if family == "" {
		family = fonts.DefaultFamily
	}

	x := res.Origin.X
	anchor := "start"
	if res.W > 0 {
		switch t.Align() {
		case scene.AlignCenter:
			x += res.W / 2
			anchor = "middle"
		case scene.AlignRight:
			x += res.W
			anchor = "end"
		}
	}
	y := res.Origin.Y + 0.8*size

	var attrs strings.Builder
	fmt.Fprintf(&attrs, ` font-family="%s" font-size="%s" font-weight="%d"`,
		escape(family), num(size), t.Weight())
	if t.Italic() {
		attrs.WriteString(` font-style="italic"`)
	}
	if anchor != "start" {
		fmt.Fprintf(&attrs, ` text-anchor="%s"`, anchor)
	}
	if op := clamp01(t.Opacity()); op < 1 {
		fmt.Fprintf(&attrs, ` opacity="%s"`, num(op))
	}

	fmt.Fprintf(&s.body, `<text x="%s" y="%s" fill="%s"%s%s>`,
		num(x), num(y), hexColor(base.R, base.G, base.B), attrs.String(), transformAttr(t, res.Origin))

	if t.Multiline() {
		for i, line := range strings.Split(t.Content(), "\n") {
			if i == 0 {
				fmt.Fprintf(&s.body, `<tspan x="%s">%s</tspan>`, num(x), escape(line))
			} else {
				fmt.Fprintf(&s.body, `<tspan x="%s" dy="1.5em">%s</tspan>`, num(x), escape(line))
			}
		}
	} else if err := s.writeSpans(t, base); err != nil {
		return fmt.Errorf("layer %q: %w", t.ID(), err)
	}

	s.body.WriteString("</text>\n")
	return nil
}

// writeSpans emits the content as runs, giving each rune the color of
// the last span covering it.
func (s *Surface) writeSpans(t *scene.Text, base color.NRGBA) error {
	content := []rune(t.Content())
	spans := t.Spans()
	if len(spans) == 0 {
		s.body.WriteString(escape(t.Content()))
		return nil
	}

	colors := make([]color.NRGBA, len(content))
	for i := range colors {
		colors[i] = base
	}
	for _, span := range spans {
		c, err := scene.ParseColor(span.Color)
		if err != nil {
			return fmt.Errorf("span [%d:%d): %w", span.Start, span.End, err)
		}
		for i := max(span.Start, 0); i < min(span.End, len(content)); i++ {
			colors[i] = c
		}
	}

	start := 0
	for i := 1; i <= len(content); i++ {
		if i < len(content) && colors[i] == colors[start] {
			continue
		}
		run := escape(string(content[start:i]))
		if colors[start] == base {
			s.body.WriteString(run)
		} else {
			c := colors[start]
			fmt.Fprintf(&s.body, `<tspan fill="%s"%s>%s</tspan>`,
				hexColor(c.R, c.G, c.B), opacityAttr("fill-opacity", float64(c.A)/255), run)
		}
		start = i
	}
	return nil
}

// baseColor picks the glyph fill. Gradients fall back to their midpoint
// color, patterns and missing paint to black.
func baseColor(t *scene.Text) (color.NRGBA, error) {
	switch p := t.Fill().(type) {
	case *scene.Solid:
		return p.RGBA()
	case *scene.Gradient:
		return p.At(0.5)
	}
	return color.NRGBA{A: 255}, nil
}
