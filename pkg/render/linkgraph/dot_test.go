package linkgraph

import (
	"strings"
	"testing"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/scene"
)

func TestToDOTNodesAndLinkEdges(t *testing.T) {
	anchor := scene.NewMorph().SetID("anchor").
		SetPosition(geom.Px(10), geom.Px(10)).
		SetSize(geom.Px(100), geom.Px(50))
	follower := scene.NewMorph().SetID("follower").
		SetPosition(geom.LinkTo("anchor", geom.LinkX, geom.Px(20)), geom.Px(10)).
		SetSize(geom.LinkTo("anchor", geom.LinkWidth, geom.Px(0)), geom.Px(50))

	dot := ToDOT([]scene.Layer{anchor, follower}, Options{})

	if !strings.Contains(dot, `"anchor" [label="anchor"];`) {
		t.Errorf("missing anchor node in:\n%s", dot)
	}
	if !strings.Contains(dot, `"follower" -> "anchor" [label="x"];`) {
		t.Errorf("missing x link edge in:\n%s", dot)
	}
	if !strings.Contains(dot, `"follower" -> "anchor" [label="width"];`) {
		t.Errorf("missing width link edge in:\n%s", dot)
	}
}

func TestToDOTGroupMembership(t *testing.T) {
	a := scene.NewMorph().SetID("a").SetSize(geom.Px(10), geom.Px(10))
	b := scene.NewMorph().SetID("b").SetSize(geom.Px(10), geom.Px(10))
	g := scene.NewGroup().SetID("grp").Add(a, b)

	dot := ToDOT([]scene.Layer{g}, Options{})

	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Errorf("group node should use dashed grey style, got:\n%s", dot)
	}
	for _, want := range []string{
		`"grp" -> "a" [style=dashed, arrowhead=open];`,
		`"grp" -> "b" [style=dashed, arrowhead=open];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing membership edge %q in:\n%s", want, dot)
		}
	}
	// Members appear as nodes too.
	if !strings.Contains(dot, `"a" [label="a"];`) {
		t.Errorf("missing member node in:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	m := scene.NewMorph().SetID("box").SetZIndex(3).SetVisible(false).
		SetSize(geom.Px(10), geom.Px(10))

	dot := ToDOT([]scene.Layer{m}, Options{Detailed: true})

	if !strings.Contains(dot, "kind: morph") {
		t.Errorf("detailed label should include kind, got:\n%s", dot)
	}
	if !strings.Contains(dot, "z: 3") {
		t.Errorf("detailed label should include z-index, got:\n%s", dot)
	}
	if !strings.Contains(dot, "hidden") {
		t.Errorf("detailed label should flag hidden layers, got:\n%s", dot)
	}
}

func TestToDOTPointLinks(t *testing.T) {
	anchor := scene.NewMorph().SetID("anchor").SetSize(geom.Px(10), geom.Px(10))
	line := scene.NewLine().SetID("edge").SetPoints(
		scene.Vertex{X: geom.LinkTo("anchor", geom.LinkX, geom.Px(0)), Y: geom.Px(5)},
		scene.Vertex{X: geom.Px(50), Y: geom.LinkTo("anchor", geom.LinkY, geom.Px(0))},
	)

	dot := ToDOT([]scene.Layer{anchor, line}, Options{})

	if !strings.Contains(dot, `"edge" -> "anchor" [label="x"];`) {
		t.Errorf("missing vertex x link in:\n%s", dot)
	}
	if !strings.Contains(dot, `"edge" -> "anchor" [label="y"];`) {
		t.Errorf("missing vertex y link in:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="72pt" height="36pt" viewBox="0.00 0.00 144.00 72.00">`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 144.00 72.00" width="144" height="72">`
	if out != want {
		t.Errorf("normalizeViewBox = %q, want %q", out, want)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg>")
	if got := string(normalizeViewBox(in)); got != "<svg>" {
		t.Errorf("unchanged input expected, got %q", got)
	}
}
