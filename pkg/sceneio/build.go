package sceneio

import (
	"github.com/matzehuels/layercake/pkg/canvas"
	"github.com/matzehuels/layercake/pkg/errors"
	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/scene"
)

// Build turns a document into a live canvas: dimensions, animation
// policy and the full layer tree. Options pass through to [canvas.New].
func Build(doc *Document, opts ...canvas.Option) (*canvas.Canvas, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	c, err := canvas.New(doc.Width, doc.Height, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "create canvas")
	}

	if a := doc.Animation; a != nil {
		applyAnimation(c.Anim(), a)
	}

	layers := make([]scene.Layer, 0, len(doc.Layers))
	for i := range doc.Layers {
		l, err := buildLayer(&doc.Layers[i])
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if err := c.Layers().Add(layers...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDuplicateID, err, "add layers")
	}
	return c, nil
}

func applyAnimation(anim *canvas.Anim, a *Animation) {
	if a.FrameRate > 0 {
		anim.SetFrameRate(a.FrameRate)
	}
	if a.MaxColors > 0 {
		anim.SetMaxColors(a.MaxColors)
	}
	if a.ColorSpace != "" {
		anim.SetColorSpace(canvas.ColorSpace(a.ColorSpace))
	}
	anim.SetLoop(a.Loop)
	anim.SetTransparency(a.Transparency)
	if a.BufferSize > 0 {
		anim.SetBufferSize(a.BufferSize)
	}
	if a.Clear != nil {
		anim.SetClear(*a.Clear)
	}
}

// buildLayer constructs one scene layer from its document entry,
// recursing into group children.
func buildLayer(e *Layer) (scene.Layer, error) {
	kind, err := scene.ParseKind(e.Type)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayerType, err, "layer %q", e.ID)
	}

	fill, err := buildPaint(e.Fill)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "layer %q fill", e.ID)
	}
	stroke, err := buildPaint(e.Stroke)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "layer %q stroke", e.ID)
	}

	var l scene.Layer
	switch kind {
	case scene.KindMorph:
		m := scene.NewMorph()
		if e.Radius != nil {
			m.SetRadius(*e.Radius)
		}
		if fill != nil {
			m.SetFill(fill)
		}
		if stroke != nil {
			m.SetStroke(stroke, val(e.StrokeWidth))
		}
		m.SetTransform(buildTransform(e.Transform))
		l = m

	case scene.KindText:
		t := scene.NewText(e.Content)
		if e.Family != "" || e.Weight > 0 {
			weight := e.Weight
			if weight == 0 {
				weight = 400
			}
			t.SetFont(e.Family, weight)
		}
		t.SetItalic(e.Italic)
		if e.FontSize != nil {
			t.SetFontSize(*e.FontSize)
		}
		if e.Align != "" {
			t.SetAlign(scene.TextAlign(e.Align))
		}
		t.SetMultiline(e.Multiline)
		for _, s := range e.Spans {
			t.AddSpan(s.Start, s.End, s.Color)
		}
		if fill != nil {
			t.SetFill(fill)
		}
		t.SetTransform(buildTransform(e.Transform))
		l = t

	case scene.KindImage:
		img := scene.NewImage(e.Source)
		if e.Fit != "" {
			img.SetFit(scene.ImageFit(e.Fit))
		}
		if e.Radius != nil {
			img.SetRadius(*e.Radius)
		}
		img.SetTransform(buildTransform(e.Transform))
		l = img

	case scene.KindLine:
		pts, err := vertices(e, 2)
		if err != nil {
			return nil, err
		}
		ln := scene.NewLine().SetPoints(pts[0], pts[1])
		if e.Thickness != nil {
			ln.SetThickness(*e.Thickness)
		}
		if fill != nil {
			ln.SetFill(fill)
		}
		if stroke != nil {
			ln.SetStroke(stroke, val(e.StrokeWidth))
		}
		l = ln

	case scene.KindQuadratic:
		pts, err := vertices(e, 3)
		if err != nil {
			return nil, err
		}
		q := scene.NewQuadratic().SetPoints(pts[0], pts[1], pts[2])
		if e.Thickness != nil {
			q.SetThickness(*e.Thickness)
		}
		if fill != nil {
			q.SetFill(fill)
		}
		if stroke != nil {
			q.SetStroke(stroke, val(e.StrokeWidth))
		}
		l = q

	case scene.KindBezier:
		pts, err := vertices(e, 4)
		if err != nil {
			return nil, err
		}
		b := scene.NewBezier().SetPoints(pts[0], pts[1], pts[2], pts[3])
		if e.Thickness != nil {
			b.SetThickness(*e.Thickness)
		}
		if fill != nil {
			b.SetFill(fill)
		}
		if stroke != nil {
			b.SetStroke(stroke, val(e.StrokeWidth))
		}
		l = b

	case scene.KindPath:
		p := scene.NewPath(e.Data)
		if fill != nil {
			p.SetFill(fill)
		}
		if stroke != nil {
			p.SetStroke(stroke, val(e.StrokeWidth))
		}
		p.SetTransform(buildTransform(e.Transform))
		l = p

	case scene.KindClear:
		l = scene.NewClear()

	case scene.KindGroup:
		g := scene.NewGroup()
		for i := range e.Children {
			child, err := buildLayer(&e.Children[i])
			if err != nil {
				return nil, err
			}
			g.Add(child)
		}
		l = g
	}

	return applyCommon(l, e)
}

// applyCommon sets the fields every variant shares. The concrete setter
// methods are fluent per type, so common state goes through a kind
// switch once more.
func applyCommon(l scene.Layer, e *Layer) (scene.Layer, error) {
	id := e.ID
	visible := true
	if e.Visible != nil {
		visible = *e.Visible
	}
	opacity := 1.0
	if e.Opacity != nil {
		opacity = *e.Opacity
	}
	x, y := val(e.X), val(e.Y)
	w, h := val(e.Width), val(e.Height)

	var anchor geom.Anchor
	if e.Anchor != "" {
		a, err := geom.ParseAnchor(e.Anchor)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "layer %q anchor", e.ID)
		}
		anchor = a
	}

	switch t := l.(type) {
	case *scene.Morph:
		t.SetPosition(x, y).SetSize(w, h).SetAnchor(anchor).
			SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Text:
		t.SetPosition(x, y).SetSize(w, h).SetAnchor(anchor).
			SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Image:
		t.SetPosition(x, y).SetSize(w, h).SetAnchor(anchor).
			SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Line:
		t.SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Quadratic:
		t.SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Bezier:
		t.SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Path:
		t.SetPosition(x, y).SetSize(w, h).SetAnchor(anchor).
			SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Clear:
		t.SetPosition(x, y).SetSize(w, h).
			SetVisible(visible).SetZIndex(e.ZIndex)
		if id != "" {
			t.SetID(id)
		}
	case *scene.Group:
		t.SetVisible(visible).SetZIndex(e.ZIndex).SetOpacity(opacity)
		if id != "" {
			t.SetID(id)
		}
	}
	return l, nil
}

func buildPaint(p *Paint) (scene.Paint, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Type {
	case "solid":
		return scene.SolidPaint(p.Color), nil
	case "linear", "radial", "conic":
		g := &scene.Gradient{
			Shape: scene.GradientShape(gradientShape(p.Type)),
			Angle: p.Angle,
		}
		for _, s := range p.Stops {
			g.Stops = append(g.Stops, scene.Stop{Offset: s.Offset, Color: s.Color})
		}
		return g, p.validateGradient(g)
	case "pattern":
		pat := scene.PatternPaint(p.Source, scene.PatternRepeat(p.Repeat))
		if p.Tile != nil {
			tile, err := buildLayer(p.Tile)
			if err != nil {
				return nil, err
			}
			pat.Tile = tile
		}
		return pat, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown paint type %q", p.Type)
}

func (p *Paint) validateGradient(g *scene.Gradient) error {
	if err := g.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "gradient")
	}
	return nil
}

func gradientShape(t string) string {
	switch t {
	case "radial":
		return string(scene.GradientRadial)
	case "conic":
		return string(scene.GradientConic)
	}
	return string(scene.GradientLinear)
}

func buildTransform(t *Transform) *scene.Transform {
	if t == nil {
		return nil
	}
	out := scene.NewTransform().
		SetRotate(t.Rotate).
		SetTranslate(t.TranslateX, t.TranslateY)
	if t.ScaleX != 0 || t.ScaleY != 0 {
		out.SetScale(t.ScaleX, t.ScaleY)
	}
	if t.Matrix != nil {
		m := *t.Matrix
		out.SetMatrix(m[0], m[1], m[2], m[3], m[4], m[5])
	}
	return out
}

func vertices(e *Layer, n int) ([]scene.Vertex, error) {
	if len(e.Points) != n {
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"layer %q: %s needs %d points, got %d", e.ID, e.Type, n, len(e.Points))
	}
	out := make([]scene.Vertex, n)
	for i, p := range e.Points {
		out[i] = scene.Vertex{X: p.X, Y: p.Y}
	}
	return out, nil
}

// val dereferences an optional value, treating absence as zero pixels.
func val(v *geom.Value) geom.Value {
	if v == nil {
		return geom.Value{}
	}
	return *v
}
