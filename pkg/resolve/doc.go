// Package resolve turns declared layer geometry into absolute pixel
// rectangles, evaluating cross-layer links in dependency order.
//
// # Overview
//
// Layer positions and sizes accept links to other layers ("my x is hero's
// x plus 8px"). Before a scene can draw, every such value must collapse to
// a number. Resolution builds a dependency graph over the layer tree -
// one edge per link, plus edges from each group to its members - and
// evaluates layers in topological order via depth-first search.
//
// A single pass both orders and evaluates: a layer's dependencies are
// fully resolved before its own values are read. Revisiting a layer that
// is still in progress means the links form a cycle; the pass aborts with
// a [*CycleError] naming the layers along it. A link whose source does
// not exist in the tree, or that points at its own layer, aborts with a
// [*UnresolvedError].
//
// # What links can reference
//
// Links may appear in box positions and sizes and in the vertices of
// point-based variants. A link reads the resolved x, y, width or height
// of its source. Positions read this way are the source's resolved
// declared position, before anchoring; sizes are the resolved size. For
// groups, which declare no geometry, all four components come from the
// visual bounding box of the resolved members.
//
// Styling values (corner radius, font size, stroke thickness) resolve
// locally against the canvas and cannot link.
//
// # Pass scoping
//
// Resolution is side-effect free and never cached: every render pass
// calls [Resolve] afresh, so mutations between passes (animation tweens,
// plugin edits, canvas resize) are always reflected. Invisible layers
// resolve like visible ones - they stay valid link sources.
package resolve
