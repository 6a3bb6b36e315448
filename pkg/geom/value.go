package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrLinkValue is returned by [Value.Resolve] when called on a link
	// value. Links depend on another layer's resolved geometry and must be
	// evaluated through the resolve package, not locally.
	ErrLinkValue = errors.New("link values resolve against the layer graph")

	// ErrLinkSpacing is returned when a link's additional spacing is itself
	// a link. Spacing is evaluated non-recursively and must be absolute,
	// percent or viewport valued.
	ErrLinkSpacing = errors.New("link spacing must not itself be a link")

	// ErrInvalidUnit is returned when parsing a value string whose suffix
	// is not one of "%", "vw" or "vh", or whose numeric part is malformed.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrInvalidLinkType is returned when a link descriptor names a type
	// outside width, height, x and y.
	ErrInvalidLinkType = errors.New("invalid link type")
)

// Unit identifies which interpretation a [Value] carries.
type Unit int

const (
	// UnitAbsolute is a fixed pixel count.
	UnitAbsolute Unit = iota
	// UnitPercent is a fraction of the canvas dimension on the value's axis.
	UnitPercent
	// UnitVw is a fraction of the canvas width, regardless of axis.
	UnitVw
	// UnitVh is a fraction of the canvas height, regardless of axis.
	UnitVh
	// UnitLink defers to another layer's resolved geometry.
	UnitLink
)

// Axis selects which canvas dimension percent values resolve against.
type Axis int

const (
	// AxisX resolves percent values against the canvas width.
	AxisX Axis = iota
	// AxisY resolves percent values against the canvas height.
	AxisY
)

// LinkType names which resolved component of the source layer a link reads.
type LinkType string

const (
	LinkWidth  LinkType = "width"
	LinkHeight LinkType = "height"
	LinkX      LinkType = "x"
	LinkY      LinkType = "y"
)

// Valid reports whether t is one of the four defined link types.
func (t LinkType) Valid() bool {
	switch t {
	case LinkWidth, LinkHeight, LinkX, LinkY:
		return true
	}
	return false
}

// Link is a deferred reference to another layer's resolved geometry.
// Source is the target layer ID, Type selects the component to read, and
// Spacing is added to the read component. Spacing is evaluated
// non-recursively: it must not itself be a link.
type Link struct {
	Source  string
	Type    LinkType
	Spacing Value
}

// Value is a scalar spatial value: an absolute pixel count, a percent or
// viewport fraction of the canvas, or a link to another layer.
//
// The zero value is an absolute 0px, which is a usable default for
// positions and spacing.
type Value struct {
	unit Unit
	n    float64
	link *Link
}

// Px returns an absolute pixel value.
func Px(n float64) Value { return Value{unit: UnitAbsolute, n: n} }

// Percent returns a value resolving to n percent of the canvas dimension
// on the axis it is used for.
func Percent(n float64) Value { return Value{unit: UnitPercent, n: n} }

// Vw returns a value resolving to n percent of the canvas width.
func Vw(n float64) Value { return Value{unit: UnitVw, n: n} }

// Vh returns a value resolving to n percent of the canvas height.
func Vh(n float64) Value { return Value{unit: UnitVh, n: n} }

// LinkTo returns a value deferring to another layer's resolved geometry.
// Source is the target layer ID, t selects which component to read, and
// spacing is added on top. Pass geom.Px(0) for no spacing.
func LinkTo(source string, t LinkType, spacing Value) Value {
	return Value{unit: UnitLink, link: &Link{Source: source, Type: t, Spacing: spacing}}
}

// Unit returns the value's unit tag.
func (v Value) Unit() Unit { return v.unit }

// Float returns the numeric payload for non-link values.
// For link values it returns 0; use [Value.Link] instead.
func (v Value) Float() float64 { return v.n }

// Link returns the link payload and true for link values,
// or a zero Link and false otherwise.
func (v Value) Link() (Link, bool) {
	if v.link == nil {
		return Link{}, false
	}
	return *v.link, true
}

// IsLink reports whether the value defers to another layer.
func (v Value) IsLink() bool { return v.unit == UnitLink }

// IsZero reports whether the value is an absolute zero, the type's zero value.
func (v Value) IsZero() bool { return v.unit == UnitAbsolute && v.n == 0 && v.link == nil }

// Resolve converts the value to pixels against the given canvas dimensions.
// Percent values resolve against w for [AxisX] and h for [AxisY]; viewport
// units ignore the axis. Returns [ErrLinkValue] for link values, which are
// evaluated by the resolve package instead.
func (v Value) Resolve(axis Axis, w, h float64) (float64, error) {
	switch v.unit {
	case UnitAbsolute:
		return v.n, nil
	case UnitPercent:
		if axis == AxisX {
			return w * v.n / 100, nil
		}
		return h * v.n / 100, nil
	case UnitVw:
		return w * v.n / 100, nil
	case UnitVh:
		return h * v.n / 100, nil
	case UnitLink:
		return 0, ErrLinkValue
	}
	return 0, fmt.Errorf("%w: unit %d", ErrInvalidUnit, v.unit)
}

// Scale multiplies the absolute pixel content of the value by ratio and
// returns the result. Percent and viewport values are returned unchanged -
// they track the canvas dimensions by definition. For links, only the
// absolute part of the spacing scales.
func (v Value) Scale(ratio float64) Value {
	switch v.unit {
	case UnitAbsolute:
		v.n *= ratio
	case UnitLink:
		l := *v.link
		l.Spacing = l.Spacing.Scale(ratio)
		v.link = &l
	}
	return v
}

// String returns the value in its wire form: "120", "50%", "10vw", "25vh",
// or "link(source.type+spacing)" for links.
func (v Value) String() string {
	switch v.unit {
	case UnitPercent:
		return formatFloat(v.n) + "%"
	case UnitVw:
		return formatFloat(v.n) + "vw"
	case UnitVh:
		return formatFloat(v.n) + "vh"
	case UnitLink:
		if v.link.Spacing.IsZero() {
			return fmt.Sprintf("link(%s.%s)", v.link.Source, v.link.Type)
		}
		return fmt.Sprintf("link(%s.%s+%s)", v.link.Source, v.link.Type, v.link.Spacing)
	}
	return formatFloat(v.n)
}

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// linkJSON is the wire form of a link descriptor.
type linkJSON struct {
	Source  string `json:"source"`
	Type    string `json:"type"`
	Spacing *Value `json:"additionalSpacing,omitempty"`
}

// MarshalJSON renders the value in its scene description form: a number
// for absolute pixels, a suffixed string for percent and viewport units,
// or a link descriptor object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.unit {
	case UnitAbsolute:
		return json.Marshal(v.n)
	case UnitPercent, UnitVw, UnitVh:
		return json.Marshal(v.String())
	case UnitLink:
		lj := linkJSON{Source: v.link.Source, Type: string(v.link.Type)}
		if !v.link.Spacing.IsZero() {
			s := v.link.Spacing
			lj.Spacing = &s
		}
		return json.Marshal(lj)
	}
	return nil, fmt.Errorf("%w: unit %d", ErrInvalidUnit, v.unit)
}

// UnmarshalJSON parses any of the scene description forms accepted by
// [Parse], plus the link descriptor object.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrInvalidUnit)
	}
	switch data[0] {
	case '{':
		var lj linkJSON
		if err := json.Unmarshal(data, &lj); err != nil {
			return fmt.Errorf("parse link descriptor: %w", err)
		}
		lt := LinkType(lj.Type)
		if !lt.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidLinkType, lj.Type)
		}
		spacing := Px(0)
		if lj.Spacing != nil {
			spacing = *lj.Spacing
		}
		if spacing.IsLink() {
			return ErrLinkSpacing
		}
		*v = LinkTo(lj.Source, lt, spacing)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidUnit, data)
		}
		*v = Px(n)
		return nil
	}
}

// Parse converts a value string to a Value. Accepted forms are a bare
// number ("120", absolute pixels), "50%", "10vw" and "25vh". Link values
// have no string form; they only appear as descriptor objects.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	unit := UnitAbsolute
	num := s
	switch {
	case strings.HasSuffix(s, "%"):
		unit, num = UnitPercent, strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "vw"):
		unit, num = UnitVw, strings.TrimSuffix(s, "vw")
	case strings.HasSuffix(s, "vh"):
		unit, num = UnitVh, strings.TrimSuffix(s, "vh")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return Value{unit: unit, n: n}, nil
}
