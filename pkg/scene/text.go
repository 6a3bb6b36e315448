package scene

import "github.com/matzehuels/layercake/pkg/geom"

// TextAlign selects horizontal text placement inside the layer box.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Span colors a substring of the text content. Start and End are rune
// offsets, End exclusive. Spans outside the content are clipped; spans
// listed later win on overlap.
type Span struct {
	Start int
	End   int
	Color string
}

// Text renders a string in a registered font. The declared size is the
// wrap box: content wraps at the box width when Multiline is set,
// otherwise it draws as a single line from the anchored origin.
type Text struct {
	base
	content   string
	family    string
	weight    int
	italic    bool
	fontSize  geom.Value
	align     TextAlign
	multiline bool
	spans     []Span
}

// NewText returns a visible text layer with a generated ID, left aligned
// at 16px in the default family.
func NewText(content string) *Text {
	return &Text{
		base:     newBase(KindText),
		content:  content,
		weight:   400,
		fontSize: geom.Px(16),
		align:    AlignLeft,
	}
}

func (t *Text) Content() string      { return t.content }
func (t *Text) Family() string       { return t.family }
func (t *Text) Weight() int          { return t.weight }
func (t *Text) Italic() bool         { return t.italic }
func (t *Text) FontSize() geom.Value { return t.fontSize }
func (t *Text) Align() TextAlign     { return t.align }
func (t *Text) Multiline() bool      { return t.multiline }

// Spans returns the colored substring spans in declaration order.
func (t *Text) Spans() []Span { return t.spans }

// SetContent replaces the text content.
func (t *Text) SetContent(s string) *Text { t.content = s; return t }

// SetFont selects the font family and weight from the registry.
func (t *Text) SetFont(family string, weight int) *Text {
	t.family, t.weight = family, weight
	return t
}

// SetItalic toggles the italic style flag.
func (t *Text) SetItalic(i bool) *Text { t.italic = i; return t }

// SetFontSize sets the glyph size.
func (t *Text) SetFontSize(size geom.Value) *Text { t.fontSize = size; return t }

// SetAlign sets horizontal placement inside the layer box.
func (t *Text) SetAlign(a TextAlign) *Text { t.align = a; return t }

// SetMultiline toggles wrapping at the box width.
func (t *Text) SetMultiline(m bool) *Text { t.multiline = m; return t }

// AddSpan appends a colored substring span.
func (t *Text) AddSpan(start, end int, color string) *Text {
	t.spans = append(t.spans, Span{Start: start, End: end, Color: color})
	return t
}

func (t *Text) SetID(id string) *Text                 { t.setID(id); return t }
func (t *Text) SetPosition(x, y geom.Value) *Text     { t.setPosition(x, y); return t }
func (t *Text) SetSize(w, h geom.Value) *Text         { t.setSize(w, h); return t }
func (t *Text) SetAnchor(a geom.Anchor) *Text         { t.setAnchor(a); return t }
func (t *Text) SetVisible(v bool) *Text               { t.setVisible(v); return t }
func (t *Text) SetZIndex(z int) *Text                 { t.setZIndex(z); return t }
func (t *Text) SetOpacity(a float64) *Text            { t.setOpacity(a); return t }
func (t *Text) SetFill(p Paint) *Text                 { t.setFill(p); return t }
func (t *Text) SetTransform(tr *Transform) *Text      { t.setTransform(tr); return t }
func (t *Text) SetStroke(p Paint, w geom.Value) *Text { t.setStroke(p, w); return t }
