package scene

import (
	"image"

	"github.com/matzehuels/layercake/pkg/geom"
)

// ImageFit selects how bitmap content maps into the layer box.
type ImageFit string

const (
	// FitStretch distorts the image to fill the box exactly.
	FitStretch ImageFit = "stretch"
	// FitContain scales preserving aspect ratio until one side touches.
	FitContain ImageFit = "contain"
	// FitCover scales preserving aspect ratio until the box is covered,
	// cropping the overflow.
	FitCover ImageFit = "cover"
	// FitNone draws at natural size from the box origin.
	FitNone ImageFit = "none"
)

// Image draws bitmap content. Source names a file to load at render
// time; an in-memory image set via [Image.SetImage] takes precedence.
type Image struct {
	base
	source string
	img    image.Image
	fit    ImageFit
	radius geom.Value
}

// NewImage returns a visible image layer with a generated ID, covering
// its box.
func NewImage(source string) *Image {
	return &Image{base: newBase(KindImage), source: source, fit: FitCover}
}

func (i *Image) Source() string      { return i.source }
func (i *Image) Fit() ImageFit       { return i.fit }
func (i *Image) Radius() geom.Value  { return i.radius }

// Loaded returns the in-memory image, or nil when the layer still points
// at an unloaded source.
func (i *Image) Loaded() image.Image { return i.img }

// SetSource points the layer at an image file, clearing any in-memory
// image.
func (i *Image) SetSource(path string) *Image { i.source, i.img = path, nil; return i }

// SetImage supplies decoded content directly, bypassing the source path.
func (i *Image) SetImage(img image.Image) *Image { i.img = img; return i }

// SetFit selects the mapping of content into the layer box.
func (i *Image) SetFit(fit ImageFit) *Image { i.fit = fit; return i }

// SetRadius rounds the image corners, clipping content.
func (i *Image) SetRadius(r geom.Value) *Image { i.radius = r; return i }

func (i *Image) SetID(id string) *Image                 { i.setID(id); return i }
func (i *Image) SetPosition(x, y geom.Value) *Image     { i.setPosition(x, y); return i }
func (i *Image) SetSize(w, h geom.Value) *Image         { i.setSize(w, h); return i }
func (i *Image) SetAnchor(a geom.Anchor) *Image         { i.setAnchor(a); return i }
func (i *Image) SetVisible(v bool) *Image               { i.setVisible(v); return i }
func (i *Image) SetZIndex(z int) *Image                 { i.setZIndex(z); return i }
func (i *Image) SetOpacity(a float64) *Image            { i.setOpacity(a); return i }
func (i *Image) SetTransform(t *Transform) *Image       { i.setTransform(t); return i }
func (i *Image) SetStroke(p Paint, w geom.Value) *Image { i.setStroke(p, w); return i }
