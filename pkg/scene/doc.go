// Package scene defines the layer data model: the [Layer] interface, the
// fixed set of drawable variants, grouping, paints and transforms.
//
// # Layers
//
// A scene is composed of layers. Every layer carries an identity (a UUID
// unless an explicit ID is set), a visibility flag, a z-index, a declared
// geometry in [geom.Value] units, a paint and an optional transform. The
// drawable variants are:
//
//   - [Morph]: rectangle, rounded rectangle or ellipse, picked by corner radius
//   - [Text]: single or multi-line text with optional colored spans
//   - [Image]: bitmap content with a fit mode
//   - [Line], [Quadratic], [Bezier]: point-based strokes
//   - [Path]: SVG path data
//   - [Clear]: blanks a region of the canvas
//
// Constructors return pointers and every setter is fluent, so scenes read
// as chains:
//
//	hero := scene.NewMorph().
//		SetID("hero").
//		SetPosition(geom.Percent(50), geom.Percent(50)).
//		SetSize(geom.Px(300), geom.Px(200)).
//		SetAnchor(geom.AnchorCenter).
//		SetFill(scene.SolidPaint("#1e6fd9"))
//
// # Groups
//
// A [Group] owns an ordered collection of layers and nests arbitrarily.
// Groups have no geometry of their own - at render time a group flattens
// into its members as one contiguous block at the group's z-index slot,
// and its resolved geometry (usable as a link source) is the bounding box
// of its resolved members.
//
// # Point-based variants
//
// Line and curve variants describe geometry as [Vertex] lists rather than
// a box. They implement [PointsLayer], which the resolver uses to evaluate
// each vertex; the resolved bounding box of the vertices becomes the
// layer's rectangle for linking and anchoring purposes.
//
// # Ownership
//
// Layers are mutable value objects. A layer belongs to at most one canvas;
// sharing one *Morph between two canvases aliases its state and is not
// supported.
package scene
