package scene

import "github.com/matzehuels/layercake/pkg/geom"

// Line draws a straight stroke between two vertices.
type Line struct {
	base
	points    [2]Vertex
	thickness geom.Value
}

// NewLine returns a visible line layer with a generated ID and a 1px
// stroke.
func NewLine() *Line {
	return &Line{base: newBase(KindLine), thickness: geom.Px(1)}
}

// SetPoints sets the endpoints.
func (l *Line) SetPoints(a, b Vertex) *Line { l.points = [2]Vertex{a, b}; return l }

// SetThickness sets the stroke width.
func (l *Line) SetThickness(t geom.Value) *Line { l.thickness = t; return l }

// Thickness returns the stroke width.
func (l *Line) Thickness() geom.Value { return l.thickness }

// Vertices returns the endpoints in draw order.
func (l *Line) Vertices() []Vertex { return l.points[:] }

func (l *Line) scaleVertices(ratio float64) { scaleVertexList(l.points[:], ratio) }

func (l *Line) SetID(id string) *Line                 { l.setID(id); return l }
func (l *Line) SetVisible(v bool) *Line               { l.setVisible(v); return l }
func (l *Line) SetZIndex(z int) *Line                 { l.setZIndex(z); return l }
func (l *Line) SetOpacity(a float64) *Line            { l.setOpacity(a); return l }
func (l *Line) SetFill(p Paint) *Line                 { l.setFill(p); return l }
func (l *Line) SetStroke(p Paint, w geom.Value) *Line { l.setStroke(p, w); return l }
func (l *Line) SetTransform(t *Transform) *Line       { l.setTransform(t); return l }

// Quadratic draws a quadratic curve from a start vertex through one
// control vertex to an end vertex.
type Quadratic struct {
	base
	points    [3]Vertex
	thickness geom.Value
}

// NewQuadratic returns a visible quadratic curve layer with a generated
// ID and a 1px stroke.
func NewQuadratic() *Quadratic {
	return &Quadratic{base: newBase(KindQuadratic), thickness: geom.Px(1)}
}

// SetPoints sets start, control and end vertices.
func (q *Quadratic) SetPoints(start, control, end Vertex) *Quadratic {
	q.points = [3]Vertex{start, control, end}
	return q
}

// SetThickness sets the stroke width.
func (q *Quadratic) SetThickness(t geom.Value) *Quadratic { q.thickness = t; return q }

// Thickness returns the stroke width.
func (q *Quadratic) Thickness() geom.Value { return q.thickness }

// Vertices returns start, control and end in draw order.
func (q *Quadratic) Vertices() []Vertex { return q.points[:] }

func (q *Quadratic) scaleVertices(ratio float64) { scaleVertexList(q.points[:], ratio) }

func (q *Quadratic) SetID(id string) *Quadratic                 { q.setID(id); return q }
func (q *Quadratic) SetVisible(v bool) *Quadratic               { q.setVisible(v); return q }
func (q *Quadratic) SetZIndex(z int) *Quadratic                 { q.setZIndex(z); return q }
func (q *Quadratic) SetOpacity(a float64) *Quadratic            { q.setOpacity(a); return q }
func (q *Quadratic) SetFill(p Paint) *Quadratic                 { q.setFill(p); return q }
func (q *Quadratic) SetStroke(p Paint, w geom.Value) *Quadratic { q.setStroke(p, w); return q }
func (q *Quadratic) SetTransform(t *Transform) *Quadratic       { q.setTransform(t); return q }

// Bezier draws a cubic curve from a start vertex through two control
// vertices to an end vertex.
type Bezier struct {
	base
	points    [4]Vertex
	thickness geom.Value
}

// NewBezier returns a visible cubic curve layer with a generated ID and
// a 1px stroke.
func NewBezier() *Bezier {
	return &Bezier{base: newBase(KindBezier), thickness: geom.Px(1)}
}

// SetPoints sets start, both controls and end vertices.
func (b *Bezier) SetPoints(start, c1, c2, end Vertex) *Bezier {
	b.points = [4]Vertex{start, c1, c2, end}
	return b
}

// SetThickness sets the stroke width.
func (b *Bezier) SetThickness(t geom.Value) *Bezier { b.thickness = t; return b }

// Thickness returns the stroke width.
func (b *Bezier) Thickness() geom.Value { return b.thickness }

// Vertices returns start, controls and end in draw order.
func (b *Bezier) Vertices() []Vertex { return b.points[:] }

func (b *Bezier) scaleVertices(ratio float64) { scaleVertexList(b.points[:], ratio) }

func (b *Bezier) SetID(id string) *Bezier                 { b.setID(id); return b }
func (b *Bezier) SetVisible(v bool) *Bezier               { b.setVisible(v); return b }
func (b *Bezier) SetZIndex(z int) *Bezier                 { b.setZIndex(z); return b }
func (b *Bezier) SetOpacity(a float64) *Bezier            { b.setOpacity(a); return b }
func (b *Bezier) SetFill(p Paint) *Bezier                 { b.setFill(p); return b }
func (b *Bezier) SetStroke(p Paint, w geom.Value) *Bezier { b.setStroke(p, w); return b }
func (b *Bezier) SetTransform(t *Transform) *Bezier       { b.setTransform(t); return b }
