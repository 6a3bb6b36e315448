package rastersink

import (
	"errors"
	"image/color"
	"testing"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/render/sink"
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

func boxOp(l scene.Layer, x, y, w, h float64) sink.Op {
	return sink.Op{
		Layer: l,
		Resolved: resolve.Resolved{
			X: x, Y: y, W: w, H: h,
			Origin: geom.Point{X: x, Y: y},
		},
	}
}

func pixelAt(t *testing.T, s *Surface, x, y int) color.NRGBA {
	t.Helper()
	r, g, b, a := s.Image().At(x, y).RGBA()
	if a == 0 {
		return color.NRGBA{}
	}
	// Un-premultiply back to NRGBA for comparison against fills.
	return color.NRGBA{
		R: uint8(r * 0xffff / a >> 8),
		G: uint8(g * 0xffff / a >> 8),
		B: uint8(b * 0xffff / a >> 8),
		A: uint8(a >> 8),
	}
}

func TestDrawMorphSolid(t *testing.T) {
	s := New(40, 40, nil)
	m := scene.NewMorph().SetID("box").SetFill(scene.SolidPaint("#ff0000"))

	if err := s.Draw(boxOp(m, 10, 10, 20, 20)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	inside := pixelAt(t, s, 20, 20)
	if inside.R != 0xff || inside.G != 0 || inside.B != 0 || inside.A != 0xff {
		t.Errorf("pixel inside = %+v, want opaque red", inside)
	}
	outside := pixelAt(t, s, 2, 2)
	if outside.A != 0 {
		t.Errorf("pixel outside = %+v, want transparent", outside)
	}
}

func TestDrawMorphEllipseCorners(t *testing.T) {
	s := New(40, 40, nil)
	m := scene.NewMorph().
		SetID("dot").
		SetFill(scene.SolidPaint("#00ff00")).
		SetRadius(geom.Px(20))

	if err := s.Draw(boxOp(m, 0, 0, 40, 40)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	center := pixelAt(t, s, 20, 20)
	if center.A != 0xff {
		t.Errorf("center = %+v, want opaque", center)
	}
	corner := pixelAt(t, s, 1, 1)
	if corner.A != 0 {
		t.Errorf("corner = %+v, want transparent outside the ellipse", corner)
	}
}

func TestDrawLine(t *testing.T) {
	s := New(40, 40, nil)
	l := scene.NewLine().SetID("ln").
		SetFill(scene.SolidPaint("#0000ff")).
		SetThickness(geom.Px(4))

	op := sink.Op{
		Layer: l,
		Resolved: resolve.Resolved{
			Points: []geom.Point{{X: 5, Y: 20}, {X: 35, Y: 20}},
		},
	}
	if err := s.Draw(op); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	mid := pixelAt(t, s, 20, 20)
	if mid.A == 0 {
		t.Error("midpoint transparent, want stroked")
	}
}

func TestDrawClearBlanksRegion(t *testing.T) {
	s := New(40, 40, nil)
	m := scene.NewMorph().SetID("bg").SetFill(scene.SolidPaint("#ff0000"))
	if err := s.Draw(boxOp(m, 0, 0, 40, 40)); err != nil {
		t.Fatalf("Draw(morph) error = %v", err)
	}

	c := scene.NewClear().SetID("hole")
	if err := s.Draw(boxOp(c, 10, 10, 10, 10)); err != nil {
		t.Fatalf("Draw(clear) error = %v", err)
	}

	if got := pixelAt(t, s, 15, 15); got.A != 0 {
		t.Errorf("cleared pixel = %+v, want transparent", got)
	}
	if got := pixelAt(t, s, 30, 30); got.A == 0 {
		t.Error("pixel outside clear region blanked, want untouched")
	}
}

func TestResetBlanksSurface(t *testing.T) {
	s := New(20, 20, nil)
	m := scene.NewMorph().SetID("bg").SetFill(scene.SolidPaint("#000000"))
	if err := s.Draw(boxOp(m, 0, 0, 20, 20)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	s.Reset()
	if got := pixelAt(t, s, 10, 10); got.A != 0 {
		t.Errorf("pixel after Reset = %+v, want transparent", got)
	}
}

func TestDrawUnknownLayer(t *testing.T) {
	s := New(10, 10, nil)
	err := s.Draw(sink.Op{Layer: nil})
	if !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("Draw(nil layer) error = %v, want ErrUnknownLayer", err)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New(10, 10, nil)
	m := scene.NewMorph().SetID("bg").SetFill(scene.SolidPaint("#ffffff"))
	if err := s.Draw(boxOp(m, 0, 0, 10, 10)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	snap := s.Snapshot()
	s.Reset()

	if _, _, _, a := snap.At(5, 5).RGBA(); a == 0 {
		t.Error("snapshot pixel blanked by Reset, want an independent copy")
	}
}

func TestDrawGradientMorph(t *testing.T) {
	s := New(40, 20, nil)
	m := scene.NewMorph().SetID("grad").SetFill(scene.LinearGradient(0,
		scene.Stop{Offset: 0, Color: "#000000"},
		scene.Stop{Offset: 1, Color: "#ffffff"},
	))

	if err := s.Draw(boxOp(m, 0, 0, 40, 20)); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	left := pixelAt(t, s, 2, 10)
	right := pixelAt(t, s, 37, 10)
	if left.R >= right.R {
		t.Errorf("gradient not ascending left to right: left R = %d, right R = %d", left.R, right.R)
	}
}
