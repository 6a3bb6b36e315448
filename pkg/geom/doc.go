// Package geom provides the spatial value model used by layer geometry:
// unit-tagged scalar values, relative links between layers, anchor presets,
// and resolved rectangles.
//
// # Values
//
// A [Value] is a tagged union over the ways a coordinate or extent can be
// expressed in a scene description:
//
//   - Absolute pixels: geom.Px(120)
//   - Percent of the canvas dimension on the value's axis: geom.Percent(50)
//   - Viewport units, usable on either axis: geom.Vw(10), geom.Vh(25)
//   - A link to another layer's resolved geometry: geom.LinkTo("hero", geom.LinkWidth, geom.Px(8))
//
// Absolute, percent and viewport values resolve locally against the canvas
// dimensions via [Value.Resolve]. Link values cannot - they depend on another
// layer's resolved geometry and are evaluated by the resolve package during a
// render pass. Calling Resolve on a link value returns [ErrLinkValue].
//
// # Anchors
//
// An [Anchor] names one of the fixed alignment presets (start, center, end
// on the horizontal axis crossed with top, middle, bottom on the vertical
// axis, plus [AnchorNone]). [Anchor.Origin] converts a layer's declared
// position into its top-left draw origin by shifting the point by a fixed
// fraction of the layer's size. The presets never inspect layer content -
// the math is pure arithmetic on the bounding box.
//
// # Wire Format
//
// Values marshal to the scene description forms: a bare JSON number for
// absolute pixels, the strings "50%", "10vw" and "25vh" for relative units,
// and an object {"source", "type", "additionalSpacing"} for links. Parsing
// accepts the same forms.
//
// # Concurrency
//
// Value, Link, Anchor and Rect are plain immutable-by-convention value
// types. Copies are independent; no internal synchronization exists or is
// needed.
package geom
