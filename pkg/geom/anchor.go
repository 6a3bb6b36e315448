package geom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAnchor is returned by [ParseAnchor] for strings that name no
// defined preset.
var ErrInvalidAnchor = errors.New("invalid anchor")

// Anchor names an alignment preset. A preset decides which point of a
// layer's bounding box its declared position refers to: the horizontal
// component is start (left edge), center or end (right edge), the vertical
// component top, middle or bottom. Unsuffixed presets use the vertical
// middle. [AnchorNone] applies no shift - the declared position is the
// top-left corner as-is.
type Anchor string

const (
	AnchorNone         Anchor = "none"
	AnchorStart        Anchor = "start"
	AnchorStartTop     Anchor = "start-top"
	AnchorStartBottom  Anchor = "start-bottom"
	AnchorCenter       Anchor = "center"
	AnchorCenterTop    Anchor = "center-top"
	AnchorCenterBottom Anchor = "center-bottom"
	AnchorEnd          Anchor = "end"
	AnchorEndTop       Anchor = "end-top"
	AnchorEndBottom    Anchor = "end-bottom"
)

// Fractions of the layer size the declared position shifts by.
// Horizontal: start = 0, center = -1/2, end = -1.
// Vertical: top = 0, middle = -1/2, bottom = -1.
var anchorFractions = map[Anchor][2]float64{
	AnchorNone:         {0, 0},
	AnchorStart:        {0, -0.5},
	AnchorStartTop:     {0, 0},
	AnchorStartBottom:  {0, -1},
	AnchorCenter:       {-0.5, -0.5},
	AnchorCenterTop:    {-0.5, 0},
	AnchorCenterBottom: {-0.5, -1},
	AnchorEnd:          {-1, -0.5},
	AnchorEndTop:       {-1, 0},
	AnchorEndBottom:    {-1, -1},
}

// Valid reports whether a names a defined preset.
func (a Anchor) Valid() bool {
	_, ok := anchorFractions[a]
	return ok
}

// Origin converts a declared position into the top-left draw origin for a
// layer of the given size. The point (x, y) shifts by the preset's fraction
// of (w, h); for example [AnchorCenter] at (200, 200) with a 100x50 layer
// yields (150, 175). Unknown presets behave like [AnchorNone].
func (a Anchor) Origin(x, y, w, h float64) (float64, float64) {
	f, ok := anchorFractions[a]
	if !ok {
		return x, y
	}
	return x + f[0]*w, y + f[1]*h
}

// ParseAnchor converts a preset name to an Anchor. Matching ignores case
// and accepts "-", "_" and camelCase separators, so "center-bottom",
// "centerBottom" and "CENTER_BOTTOM" all parse to [AnchorCenterBottom].
// The empty string parses to [AnchorNone].
func ParseAnchor(s string) (Anchor, error) {
	if s == "" {
		return AnchorNone, nil
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	for a := range anchorFractions {
		if strings.ReplaceAll(string(a), "-", "") == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
}
