package scene

import (
	"testing"

	"github.com/matzehuels/layercake/pkg/geom"
)

func TestNewLayerDefaults(t *testing.T) {
	m := NewMorph()

	if m.ID() == "" {
		t.Error("ID() = empty, want generated UUID")
	}
	if !m.Visible() {
		t.Error("Visible() = false, want true")
	}
	if m.ZIndex() != 0 {
		t.Errorf("ZIndex() = %d, want 0", m.ZIndex())
	}
	if m.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want 1", m.Opacity())
	}
	if m.Kind() != KindMorph {
		t.Errorf("Kind() = %v, want %v", m.Kind(), KindMorph)
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	a, b := NewMorph(), NewMorph()
	if a.ID() == b.ID() {
		t.Errorf("two generated IDs collide: %q", a.ID())
	}
}

func TestFluentChain(t *testing.T) {
	m := NewMorph().
		SetID("hero").
		SetPosition(geom.Px(10), geom.Px(20)).
		SetSize(geom.Px(300), geom.Px(200)).
		SetAnchor(geom.AnchorCenter).
		SetZIndex(3).
		SetRadius(geom.Px(12)).
		SetFill(SolidPaint("#1e6fd9"))

	if m.ID() != "hero" {
		t.Errorf("ID() = %q, want %q", m.ID(), "hero")
	}
	geo := m.Geometry()
	if geo.X.Float() != 10 || geo.Y.Float() != 20 {
		t.Errorf("position = (%v, %v), want (10, 20)", geo.X, geo.Y)
	}
	if geo.W.Float() != 300 || geo.H.Float() != 200 {
		t.Errorf("size = (%v, %v), want (300, 200)", geo.W, geo.H)
	}
	if geo.Anchor != geom.AnchorCenter {
		t.Errorf("anchor = %v, want %v", geo.Anchor, geom.AnchorCenter)
	}
	if m.ZIndex() != 3 {
		t.Errorf("ZIndex() = %d, want 3", m.ZIndex())
	}
	if m.Radius().Float() != 12 {
		t.Errorf("Radius() = %v, want 12", m.Radius())
	}
}

func TestSetIDIgnoresEmpty(t *testing.T) {
	m := NewMorph()
	generated := m.ID()
	m.SetID("")
	if m.ID() != generated {
		t.Errorf("SetID(\"\") replaced the generated ID: %q", m.ID())
	}
}

func TestSetOpacityClamps(t *testing.T) {
	if got := NewMorph().SetOpacity(1.7).Opacity(); got != 1 {
		t.Errorf("SetOpacity(1.7) = %v, want 1", got)
	}
	if got := NewMorph().SetOpacity(-0.2).Opacity(); got != 0 {
		t.Errorf("SetOpacity(-0.2) = %v, want 0", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{
		KindMorph, KindText, KindImage, KindLine, KindQuadratic,
		KindBezier, KindPath, KindClear, KindGroup,
	} {
		got, err := ParseKind(string(k))
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k, got, k)
		}
	}

	if _, err := ParseKind("sprite"); err == nil {
		t.Error("ParseKind(\"sprite\") error = nil, want ErrInvalidKind")
	}
}

func TestVerticesExposed(t *testing.T) {
	l := NewLine().SetPoints(
		Vertex{X: geom.Px(0), Y: geom.Px(0)},
		Vertex{X: geom.Px(100), Y: geom.Px(50)},
	)

	var pl PointsLayer = l
	vs := pl.Vertices()
	if len(vs) != 2 {
		t.Fatalf("Vertices() len = %d, want 2", len(vs))
	}
	if vs[1].X.Float() != 100 || vs[1].Y.Float() != 50 {
		t.Errorf("Vertices()[1] = (%v, %v), want (100, 50)", vs[1].X, vs[1].Y)
	}

	b := NewBezier()
	if got := len(b.Vertices()); got != 4 {
		t.Errorf("Bezier Vertices() len = %d, want 4", got)
	}
	q := NewQuadratic()
	if got := len(q.Vertices()); got != 3 {
		t.Errorf("Quadratic Vertices() len = %d, want 3", got)
	}
}

func TestCurveStrokeSetters(t *testing.T) {
	red := SolidPaint("#ff0000")

	layers := []Layer{
		NewLine().SetStroke(red, geom.Px(2)),
		NewQuadratic().SetStroke(red, geom.Px(2)),
		NewBezier().SetStroke(red, geom.Px(2)),
	}
	for _, l := range layers {
		p, w := l.Stroke()
		if p != red {
			t.Errorf("%s Stroke() paint = %v, want %v", l.Kind(), p, red)
		}
		if w.Float() != 2 {
			t.Errorf("%s Stroke() width = %v, want 2", l.Kind(), w)
		}
	}
}

func TestScaleGeometry(t *testing.T) {
	m := NewMorph().
		SetPosition(geom.Px(100), geom.Percent(50)).
		SetSize(geom.Px(200), geom.Vh(10)).
		SetRadius(geom.Px(8))

	ScaleGeometry(m, 2)

	geo := m.Geometry()
	if geo.X.Float() != 200 {
		t.Errorf("scaled x = %v, want 200", geo.X)
	}
	if geo.Y.Float() != 50 {
		t.Errorf("scaled percent y = %v, want unchanged 50", geo.Y)
	}
	if geo.W.Float() != 400 {
		t.Errorf("scaled w = %v, want 400", geo.W)
	}
	if geo.H.Float() != 10 {
		t.Errorf("scaled vh h = %v, want unchanged 10", geo.H)
	}
	if m.Radius().Float() != 16 {
		t.Errorf("scaled radius = %v, want 16", m.Radius())
	}
}

func TestScaleGeometryVertices(t *testing.T) {
	l := NewLine().
		SetPoints(Vertex{X: geom.Px(10), Y: geom.Px(10)}, Vertex{X: geom.Percent(50), Y: geom.Px(40)}).
		SetThickness(geom.Px(2))

	ScaleGeometry(l, 3)

	vs := l.Vertices()
	if vs[0].X.Float() != 30 {
		t.Errorf("scaled vertex x = %v, want 30", vs[0].X)
	}
	if vs[1].X.Float() != 50 {
		t.Errorf("scaled percent vertex = %v, want unchanged 50", vs[1].X)
	}
	if l.Thickness().Float() != 6 {
		t.Errorf("scaled thickness = %v, want 6", l.Thickness())
	}
}

func TestScaleGeometryGroupRecurses(t *testing.T) {
	child := NewMorph().SetPosition(geom.Px(10), geom.Px(10))
	g := NewGroup().Add(child)

	ScaleGeometry(g, 2)

	if got := child.Geometry().X.Float(); got != 20 {
		t.Errorf("group member scaled x = %v, want 20", got)
	}
}

func TestTransformCoefficients(t *testing.T) {
	// Pure translation.
	tr := NewTransform().SetTranslate(5, 7)
	c := tr.Coefficients()
	want := [6]float64{1, 0, 0, 1, 5, 7}
	if c != want {
		t.Errorf("Coefficients() = %v, want %v", c, want)
	}

	// Raw matrix wins.
	tr.SetMatrix(2, 0, 0, 2, 0, 0)
	c = tr.Coefficients()
	want = [6]float64{2, 0, 0, 2, 0, 0}
	if c != want {
		t.Errorf("Coefficients() with matrix = %v, want %v", c, want)
	}

	if !NewTransform().Identity() {
		t.Error("NewTransform().Identity() = false, want true")
	}
	if tr.Identity() {
		t.Error("scaled transform Identity() = true, want false")
	}
}
