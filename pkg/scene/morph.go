package scene

import "github.com/matzehuels/layercake/pkg/geom"

// Morph is the shape variant. Its silhouette is picked by the corner
// radius: zero draws a rectangle, a radius of at least half the smaller
// side an ellipse, anything between a rounded rectangle.
type Morph struct {
	base
	radius geom.Value
}

// NewMorph returns a visible shape layer with a generated ID.
func NewMorph() *Morph {
	return &Morph{base: newBase(KindMorph)}
}

// Radius returns the declared corner radius.
func (m *Morph) Radius() geom.Value { return m.radius }

// SetRadius sets the corner radius.
func (m *Morph) SetRadius(r geom.Value) *Morph { m.radius = r; return m }

func (m *Morph) SetID(id string) *Morph                   { m.setID(id); return m }
func (m *Morph) SetPosition(x, y geom.Value) *Morph       { m.setPosition(x, y); return m }
func (m *Morph) SetSize(w, h geom.Value) *Morph           { m.setSize(w, h); return m }
func (m *Morph) SetAnchor(a geom.Anchor) *Morph           { m.setAnchor(a); return m }
func (m *Morph) SetVisible(v bool) *Morph                 { m.setVisible(v); return m }
func (m *Morph) SetZIndex(z int) *Morph                   { m.setZIndex(z); return m }
func (m *Morph) SetOpacity(a float64) *Morph              { m.setOpacity(a); return m }
func (m *Morph) SetFill(p Paint) *Morph                   { m.setFill(p); return m }
func (m *Morph) SetTransform(t *Transform) *Morph         { m.setTransform(t); return m }
func (m *Morph) SetStroke(p Paint, w geom.Value) *Morph   { m.setStroke(p, w); return m }
