package sceneio

import (
	"github.com/matzehuels/layercake/pkg/canvas"
	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/scene"
)

// Snapshot captures a canvas as a document. Building the snapshot on a
// canvas of the same dimensions reproduces the scene, so documents
// round-trip through Build and Snapshot.
func Snapshot(c *canvas.Canvas) *Document {
	doc := &Document{
		Width:     c.Width(),
		Height:    c.Height(),
		Animation: snapshotAnimation(c.Anim()),
	}
	for _, l := range c.Layers().Roots() {
		doc.Layers = append(doc.Layers, snapshotLayer(l))
	}
	return doc
}

func snapshotAnimation(a *canvas.Anim) *Animation {
	clear := a.Clear()
	return &Animation{
		FrameRate:    a.FrameRate(),
		MaxColors:    a.MaxColors(),
		ColorSpace:   string(a.ColorSpace()),
		Loop:         a.Loop(),
		Transparency: a.Transparency(),
		BufferSize:   a.BufferSize(),
		Clear:        &clear,
	}
}

func snapshotLayer(l scene.Layer) Layer {
	g := l.Geometry()
	e := Layer{
		Type:   string(l.Kind()),
		ID:     l.ID(),
		X:      optVal(g.X),
		Y:      optVal(g.Y),
		Width:  optVal(g.W),
		Height: optVal(g.H),
		Anchor: string(g.Anchor),
		ZIndex: l.ZIndex(),
	}
	if !l.Visible() {
		visible := false
		e.Visible = &visible
	}
	if op := l.Opacity(); op != 1 {
		e.Opacity = &op
	}
	e.Fill = snapshotPaint(l.Fill())
	if stroke, width := l.Stroke(); stroke != nil {
		e.Stroke = snapshotPaint(stroke)
		e.StrokeWidth = optVal(width)
	}
	e.Transform = snapshotTransform(l.Transform())

	switch t := l.(type) {
	case *scene.Morph:
		e.Radius = optVal(t.Radius())
	case *scene.Text:
		e.Content = t.Content()
		e.Family = t.Family()
		e.Weight = t.Weight()
		e.Italic = t.Italic()
		e.FontSize = optVal(t.FontSize())
		e.Align = string(t.Align())
		e.Multiline = t.Multiline()
		for _, s := range t.Spans() {
			e.Spans = append(e.Spans, Span{Start: s.Start, End: s.End, Color: s.Color})
		}
	case *scene.Image:
		e.Source = t.Source()
		e.Fit = string(t.Fit())
		e.Radius = optVal(t.Radius())
	case *scene.Path:
		e.Data = t.Data()
	case *scene.Group:
		for _, child := range t.Children() {
			e.Children = append(e.Children, snapshotLayer(child))
		}
	}

	if pl, ok := l.(scene.PointsLayer); ok {
		for _, v := range pl.Vertices() {
			e.Points = append(e.Points, Point{X: v.X, Y: v.Y})
		}
		switch t := l.(type) {
		case *scene.Line:
			e.Thickness = optVal(t.Thickness())
		case *scene.Quadratic:
			e.Thickness = optVal(t.Thickness())
		case *scene.Bezier:
			e.Thickness = optVal(t.Thickness())
		}
	}
	return e
}

func snapshotPaint(p scene.Paint) *Paint {
	switch paint := p.(type) {
	case *scene.Solid:
		return &Paint{Type: "solid", Color: paint.Color}
	case *scene.Gradient:
		out := &Paint{Type: paintType(paint.Shape), Angle: paint.Angle}
		for _, s := range paint.Stops {
			out.Stops = append(out.Stops, Stop{Offset: s.Offset, Color: s.Color})
		}
		return out
	case *scene.Pattern:
		out := &Paint{Type: "pattern", Source: paint.Source, Repeat: string(paint.Repeat)}
		if paint.Tile != nil {
			tile := snapshotLayer(paint.Tile)
			out.Tile = &tile
		}
		return out
	}
	return nil
}

func paintType(shape scene.GradientShape) string {
	switch shape {
	case scene.GradientRadial:
		return "radial"
	case scene.GradientConic:
		return "conic"
	}
	return "linear"
}

func snapshotTransform(t *scene.Transform) *Transform {
	if t.Identity() {
		return nil
	}
	return &Transform{
		Rotate:     t.Rotate,
		ScaleX:     t.ScaleX,
		ScaleY:     t.ScaleY,
		TranslateX: t.TranslateX,
		TranslateY: t.TranslateY,
		Matrix:     t.Matrix,
	}
}

func optVal(v geom.Value) *geom.Value {
	if v.IsZero() {
		return nil
	}
	return &v
}
