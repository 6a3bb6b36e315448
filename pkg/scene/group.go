package scene

// Group owns an ordered collection of layers. It has identity, visibility
// and a z-index like any layer, but no geometry of its own: at render
// time the group flattens into its members as one contiguous block at the
// group's slot, members ordered by their own z-indexes within the block.
// The group's resolved geometry, usable as a link source, is the bounding
// box of its resolved members.
type Group struct {
	base
	children []Layer
}

// NewGroup returns a visible empty group with a generated ID.
func NewGroup() *Group {
	return &Group{base: newBase(KindGroup)}
}

// Add appends layers to the group in call order.
func (g *Group) Add(layers ...Layer) *Group {
	g.children = append(g.children, layers...)
	return g
}

// Remove drops the first member with the given ID, recursing into nested
// groups. It reports whether a member was removed.
func (g *Group) Remove(id string) bool {
	for i, child := range g.children {
		if child.ID() == id {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
		if nested, ok := child.(*Group); ok && nested.Remove(id) {
			return true
		}
	}
	return false
}

// Children returns the members in insertion order. The returned slice is
// the group's own backing store; callers must not modify it.
func (g *Group) Children() []Layer { return g.children }

// Len returns the number of direct members.
func (g *Group) Len() int { return len(g.children) }

func (g *Group) SetID(id string) *Group      { g.setID(id); return g }
func (g *Group) SetVisible(v bool) *Group    { g.setVisible(v); return g }
func (g *Group) SetZIndex(z int) *Group      { g.setZIndex(z); return g }
func (g *Group) SetOpacity(a float64) *Group { g.setOpacity(a); return g }
