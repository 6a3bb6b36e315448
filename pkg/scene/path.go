package scene

import "github.com/matzehuels/layercake/pkg/geom"

// Path draws SVG path data. The path's own coordinates are offset by the
// layer's anchored origin; the declared size participates only in
// anchoring and linking, not in scaling the data.
type Path struct {
	base
	data string
}

// NewPath returns a visible path layer with a generated ID.
func NewPath(data string) *Path {
	return &Path{base: newBase(KindPath), data: data}
}

// Data returns the SVG path data string.
func (p *Path) Data() string { return p.data }

// SetData replaces the SVG path data string.
func (p *Path) SetData(d string) *Path { p.data = d; return p }

func (p *Path) SetID(id string) *Path                 { p.setID(id); return p }
func (p *Path) SetPosition(x, y geom.Value) *Path     { p.setPosition(x, y); return p }
func (p *Path) SetSize(w, h geom.Value) *Path         { p.setSize(w, h); return p }
func (p *Path) SetAnchor(a geom.Anchor) *Path         { p.setAnchor(a); return p }
func (p *Path) SetVisible(v bool) *Path               { p.setVisible(v); return p }
func (p *Path) SetZIndex(z int) *Path                 { p.setZIndex(z); return p }
func (p *Path) SetOpacity(a float64) *Path            { p.setOpacity(a); return p }
func (p *Path) SetFill(paint Paint) *Path             { p.setFill(paint); return p }
func (p *Path) SetTransform(t *Transform) *Path       { p.setTransform(t); return p }
func (p *Path) SetStroke(s Paint, w geom.Value) *Path { p.setStroke(s, w); return p }

// Clear blanks a region of the canvas, removing everything drawn below
// it in stacking order.
type Clear struct {
	base
}

// NewClear returns a clear layer with a generated ID.
func NewClear() *Clear {
	return &Clear{base: newBase(KindClear)}
}

func (c *Clear) SetID(id string) *Clear             { c.setID(id); return c }
func (c *Clear) SetPosition(x, y geom.Value) *Clear { c.setPosition(x, y); return c }
func (c *Clear) SetSize(w, h geom.Value) *Clear     { c.setSize(w, h); return c }
func (c *Clear) SetAnchor(a geom.Anchor) *Clear     { c.setAnchor(a); return c }
func (c *Clear) SetVisible(v bool) *Clear           { c.setVisible(v); return c }
func (c *Clear) SetZIndex(z int) *Clear             { c.setZIndex(z); return c }
