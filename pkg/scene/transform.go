package scene

import "math"

// Transform is an optional affine transform applied around the layer's
// draw origin. Rotation is in degrees, scale factors default to 1, and a
// raw 2x3 matrix (column-major [a b c d e f] as in SVG) wins over the
// individual components when set.
type Transform struct {
	Rotate     float64
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64
	Matrix     *[6]float64
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{ScaleX: 1, ScaleY: 1}
}

// SetRotate sets the rotation in degrees.
func (t *Transform) SetRotate(deg float64) *Transform {
	t.Rotate = deg
	return t
}

// SetScale sets the axis scale factors.
func (t *Transform) SetScale(sx, sy float64) *Transform {
	t.ScaleX, t.ScaleY = sx, sy
	return t
}

// SetTranslate sets the translation in pixels.
func (t *Transform) SetTranslate(dx, dy float64) *Transform {
	t.TranslateX, t.TranslateY = dx, dy
	return t
}

// SetMatrix sets a raw 2x3 affine matrix, overriding the individual
// components.
func (t *Transform) SetMatrix(a, b, c, d, e, f float64) *Transform {
	t.Matrix = &[6]float64{a, b, c, d, e, f}
	return t
}

// Coefficients returns the transform as a 2x3 affine matrix
// [a b c d e f], mapping (x, y) to (a*x+c*y+e, b*x+d*y+f). When no raw
// matrix is set, the components compose as translate * rotate * scale.
func (t *Transform) Coefficients() [6]float64 {
	if t.Matrix != nil {
		return *t.Matrix
	}
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	rad := t.Rotate * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		t.TranslateX, t.TranslateY,
	}
}

// Identity reports whether applying the transform would change nothing.
func (t *Transform) Identity() bool {
	if t == nil {
		return true
	}
	c := t.Coefficients()
	return c == [6]float64{1, 0, 0, 1, 0, 0}
}
