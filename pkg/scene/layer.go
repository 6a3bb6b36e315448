package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/layercake/pkg/geom"
)

// ErrInvalidKind is returned by [ParseKind] for strings that name no
// layer variant.
var ErrInvalidKind = errors.New("invalid layer kind")

// Kind names a layer variant. The set is fixed; scene descriptions use
// the kind as the type discriminant.
type Kind string

const (
	KindMorph     Kind = "morph"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindLine      Kind = "line"
	KindQuadratic Kind = "quadratic"
	KindBezier    Kind = "bezier"
	KindPath      Kind = "path"
	KindClear     Kind = "clear"
	KindGroup     Kind = "group"
)

// ParseKind converts a type discriminant to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMorph, KindText, KindImage, KindLine, KindQuadratic,
		KindBezier, KindPath, KindClear, KindGroup:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Geometry is the declared spatial description shared by box-based layers:
// a position, a size and the anchor preset that decides which point of the
// box the position refers to.
type Geometry struct {
	X      geom.Value
	Y      geom.Value
	W      geom.Value
	H      geom.Value
	Anchor geom.Anchor
}

// Vertex is a declared point for line and curve variants. Both components
// accept the full value union, links included.
type Vertex struct {
	X geom.Value
	Y geom.Value
}

// Layer is the contract every scene element satisfies. Concrete variants
// add their own typed accessors; renderers dispatch on the concrete type.
type Layer interface {
	// ID returns the layer's identity, unique within one canvas.
	ID() string
	// Kind returns the variant discriminant.
	Kind() Kind
	// Visible reports whether the layer participates in rendering.
	Visible() bool
	// ZIndex returns the stacking position. Higher draws later.
	ZIndex() int
	// Geometry returns the declared box geometry. Point-based variants
	// return a zero box; their extent derives from their vertices.
	Geometry() Geometry
	// Opacity returns the layer alpha in [0, 1].
	Opacity() float64
	// Fill returns the fill paint, or nil when unset.
	Fill() Paint
	// Stroke returns the stroke paint and width, or nil when unset.
	Stroke() (Paint, geom.Value)
	// Transform returns the optional affine transform, or nil.
	Transform() *Transform
}

// PointsLayer is implemented by variants whose geometry is a vertex list
// rather than a box: [Line], [Quadratic] and [Bezier]. The resolver
// evaluates each vertex and derives the layer rectangle from their
// bounding box.
type PointsLayer interface {
	Layer
	Vertices() []Vertex
}

// Container is implemented by [Group]. Members keep their own z-indexes,
// which order them inside the group's slot only.
type Container interface {
	Layer
	Children() []Layer
}

// base carries the state shared by all variants. Concrete types embed it
// and re-expose the setters fluently.
type base struct {
	id          string
	kind        Kind
	visible     bool
	zIndex      int
	geo         Geometry
	opacity     float64
	fill        Paint
	stroke      Paint
	strokeWidth geom.Value
	transform   *Transform
}

func newBase(kind Kind) base {
	return base{
		id:      uuid.NewString(),
		kind:    kind,
		visible: true,
		opacity: 1,
	}
}

func (b *base) ID() string         { return b.id }
func (b *base) Kind() Kind         { return b.kind }
func (b *base) Visible() bool      { return b.visible }
func (b *base) ZIndex() int        { return b.zIndex }
func (b *base) Geometry() Geometry { return b.geo }
func (b *base) Opacity() float64   { return b.opacity }
func (b *base) Fill() Paint        { return b.fill }

func (b *base) Stroke() (Paint, geom.Value) { return b.stroke, b.strokeWidth }

func (b *base) Transform() *Transform { return b.transform }

func (b *base) setID(id string) {
	if id != "" {
		b.id = id
	}
}

func (b *base) setPosition(x, y geom.Value) { b.geo.X, b.geo.Y = x, y }
func (b *base) setSize(w, h geom.Value)     { b.geo.W, b.geo.H = w, h }
func (b *base) setAnchor(a geom.Anchor)     { b.geo.Anchor = a }
func (b *base) setVisible(v bool)           { b.visible = v }
func (b *base) setZIndex(z int)             { b.zIndex = z }
func (b *base) setFill(p Paint)             { b.fill = p }
func (b *base) setTransform(t *Transform)   { b.transform = t }

func (b *base) setStroke(p Paint, width geom.Value) {
	b.stroke = p
	b.strokeWidth = width
}

func (b *base) setOpacity(a float64) {
	b.opacity = min(max(a, 0), 1)
}

// ScaleGeometry multiplies the absolute parts of a layer's declared
// geometry by ratio. Relative units are left alone; vertex lists scale
// per vertex. Canvas resize uses this to keep scenes proportionate.
func ScaleGeometry(l Layer, ratio float64) {
	switch t := l.(type) {
	case *Morph:
		t.scaleBox(ratio)
		t.radius = t.radius.Scale(ratio)
	case *Text:
		t.scaleBox(ratio)
		t.fontSize = t.fontSize.Scale(ratio)
	case *Image:
		t.scaleBox(ratio)
	case *Line:
		t.scaleVertices(ratio)
		t.thickness = t.thickness.Scale(ratio)
	case *Quadratic:
		t.scaleVertices(ratio)
		t.thickness = t.thickness.Scale(ratio)
	case *Bezier:
		t.scaleVertices(ratio)
		t.thickness = t.thickness.Scale(ratio)
	case *Path:
		t.scaleBox(ratio)
	case *Clear:
		t.scaleBox(ratio)
	case *Group:
		for _, child := range t.children {
			ScaleGeometry(child, ratio)
		}
	}
}

func (b *base) scaleBox(ratio float64) {
	b.geo.X = b.geo.X.Scale(ratio)
	b.geo.Y = b.geo.Y.Scale(ratio)
	b.geo.W = b.geo.W.Scale(ratio)
	b.geo.H = b.geo.H.Scale(ratio)
	b.strokeWidth = b.strokeWidth.Scale(ratio)
}

func scaleVertexList(vs []Vertex, ratio float64) {
	for i := range vs {
		vs[i].X = vs[i].X.Scale(ratio)
		vs[i].Y = vs[i].Y.Scale(ratio)
	}
}
