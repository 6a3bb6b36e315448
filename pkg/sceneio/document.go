// Package sceneio reads and writes scene descriptions. Documents are
// JSON or YAML, structurally identical: YAML input normalizes through
// the JSON path, so one set of codecs serves both. Build turns a
// document into a live canvas; Snapshot goes the other way, producing a
// round-trippable document from a canvas.
package sceneio

import (
	"github.com/matzehuels/layercake/pkg/geom"
)

// Document is the root of a scene description.
type Document struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Export    *Export    `json:"export,omitempty"`
	Animation *Animation `json:"animation,omitempty"`
	Layers    []Layer    `json:"layers"`
}

// Export carries the document's preferred export settings. The pipeline
// uses them as defaults; callers override per run.
type Export struct {
	Format     string `json:"format"`
	Name       string `json:"name,omitempty"`
	SaveAsFile bool   `json:"save_as_file,omitempty"`
}

// Animation mirrors the canvas animation policy. Pointer fields
// distinguish "unset, keep the default" from explicit zero values.
type Animation struct {
	FrameRate    int    `json:"frame_rate,omitempty"`
	MaxColors    int    `json:"max_colors,omitempty"`
	ColorSpace   string `json:"color_space,omitempty"`
	Loop         bool   `json:"loop,omitempty"`
	Transparency bool   `json:"transparency,omitempty"`
	BufferSize   int    `json:"buffer_size,omitempty"`
	Clear        *bool  `json:"clear,omitempty"`
}

// Layer is one scene element. Type discriminates the variant; the other
// fields apply to the variants that use them and stay empty otherwise.
type Layer struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	X       *geom.Value `json:"x,omitempty"`
	Y       *geom.Value `json:"y,omitempty"`
	Width   *geom.Value `json:"width,omitempty"`
	Height  *geom.Value `json:"height,omitempty"`
	Anchor  string      `json:"anchor,omitempty"`
	Visible *bool       `json:"visible,omitempty"`
	ZIndex  int         `json:"z_index,omitempty"`
	Opacity *float64    `json:"opacity,omitempty"`

	Fill        *Paint      `json:"fill,omitempty"`
	Stroke      *Paint      `json:"stroke,omitempty"`
	StrokeWidth *geom.Value `json:"stroke_width,omitempty"`
	Transform   *Transform  `json:"transform,omitempty"`

	// Morph and image corners.
	Radius *geom.Value `json:"radius,omitempty"`

	// Text fields.
	Content   string      `json:"content,omitempty"`
	Family    string      `json:"family,omitempty"`
	Weight    int         `json:"weight,omitempty"`
	Italic    bool        `json:"italic,omitempty"`
	FontSize  *geom.Value `json:"font_size,omitempty"`
	Align     string      `json:"align,omitempty"`
	Multiline bool        `json:"multiline,omitempty"`
	Spans     []Span      `json:"spans,omitempty"`

	// Image fields.
	Source string `json:"source,omitempty"`
	Fit    string `json:"fit,omitempty"`

	// Line and curve vertices, in draw order.
	Points    []Point     `json:"points,omitempty"`
	Thickness *geom.Value `json:"thickness,omitempty"`

	// Path data.
	Data string `json:"data,omitempty"`

	// Group members.
	Children []Layer `json:"children,omitempty"`
}

// Point is a declared vertex; both components accept the full value
// union, links included.
type Point struct {
	X geom.Value `json:"x"`
	Y geom.Value `json:"y"`
}

// Span colors a rune range of text content.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color"`
}

// Paint describes a fill or stroke. Type is solid, linear, radial,
// conic or pattern.
type Paint struct {
	Type   string  `json:"type"`
	Color  string  `json:"color,omitempty"`
	Angle  float64 `json:"angle,omitempty"`
	Stops  []Stop  `json:"stops,omitempty"`
	Source string  `json:"source,omitempty"`
	Repeat string  `json:"repeat,omitempty"`
	Tile   *Layer  `json:"tile,omitempty"`
}

// Stop is one gradient color stop.
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Transform is an affine transform entry. Matrix, when present, wins
// over the individual components.
type Transform struct {
	Rotate     float64     `json:"rotate,omitempty"`
	ScaleX     float64     `json:"scale_x,omitempty"`
	ScaleY     float64     `json:"scale_y,omitempty"`
	TranslateX float64     `json:"translate_x,omitempty"`
	TranslateY float64     `json:"translate_y,omitempty"`
	Matrix     *[6]float64 `json:"matrix,omitempty"`
}
