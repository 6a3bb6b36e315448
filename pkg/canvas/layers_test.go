package canvas

import (
	"errors"
	"testing"

	"github.com/matzehuels/layercake/pkg/scene"
)

func testCanvas(t *testing.T) *Canvas {
	t.Helper()
	c, err := New(800, 600)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func ids(seq func(yield func(scene.Layer) bool)) []string {
	var out []string
	seq(func(l scene.Layer) bool {
		out = append(out, l.ID())
		return true
	})
	return out
}

func TestAddAndGet(t *testing.T) {
	c := testCanvas(t)
	m := scene.NewMorph().SetID("a")

	if err := c.Layers().Add(m); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	got, ok := c.Layers().Get("a")
	if !ok || got != scene.Layer(m) {
		t.Errorf("Get(a) = %v, %v; want the added layer, true", got, ok)
	}
	if !c.Layers().Has("a") {
		t.Error("Has(a) = false, want true")
	}
	if c.Layers().Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Layers().Len())
	}
}

func TestAddDuplicateRejectsBatch(t *testing.T) {
	c := testCanvas(t)
	original := scene.NewMorph().SetID("a").SetZIndex(5)
	if err := c.Layers().Add(original); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	clash := scene.NewMorph().SetID("a")
	fresh := scene.NewMorph().SetID("b")
	err := c.Layers().Add(fresh, clash)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Add() error = %v, want ErrDuplicateID", err)
	}

	// The whole batch is rejected and the registry is untouched.
	if c.Layers().Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Layers().Len())
	}
	if c.Layers().Has("b") {
		t.Error("Has(b) = true, want rejected batch to leave no trace")
	}
	got, _ := c.Layers().Get("a")
	if got.ZIndex() != 5 {
		t.Error("original layer displaced by rejected duplicate")
	}
}

func TestAddDuplicateInsideGroup(t *testing.T) {
	c := testCanvas(t)
	if err := c.Layers().Add(scene.NewMorph().SetID("inner")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	g := scene.NewGroup().SetID("g").Add(scene.NewMorph().SetID("inner"))
	if err := c.Layers().Add(g); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add(group with clashing member) error = %v, want ErrDuplicateID", err)
	}
}

func TestAddIndexesGroupMembers(t *testing.T) {
	c := testCanvas(t)
	g := scene.NewGroup().SetID("g").Add(
		scene.NewMorph().SetID("member"),
		scene.NewGroup().SetID("nested").Add(scene.NewMorph().SetID("deep")),
	)
	if err := c.Layers().Add(g); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	for _, id := range []string{"g", "member", "nested", "deep"} {
		if !c.Layers().Has(id) {
			t.Errorf("Has(%s) = false, want true", id)
		}
	}
	if c.Layers().Len() != 1 {
		t.Errorf("Len() = %d, want 1 top-level entry", c.Layers().Len())
	}
}

func TestRemove(t *testing.T) {
	c := testCanvas(t)
	c.Layers().Add(scene.NewMorph().SetID("a"), scene.NewMorph().SetID("b"))

	if err := c.Layers().Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if c.Layers().Has("a") {
		t.Error("Has(a) = true after Remove")
	}
	if c.Layers().Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Layers().Len())
	}

	if err := c.Layers().Remove("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveGroupMember(t *testing.T) {
	c := testCanvas(t)
	g := scene.NewGroup().SetID("g").Add(scene.NewMorph().SetID("member"))
	c.Layers().Add(g)

	if err := c.Layers().Remove("member"); err != nil {
		t.Fatalf("Remove(member) error = %v", err)
	}
	if c.Layers().Has("member") {
		t.Error("Has(member) = true after removal from group")
	}
	if g.Len() != 0 {
		t.Errorf("group Len() = %d, want 0", g.Len())
	}

	// Removing a group drops its members from the index too.
	c.Layers().Remove("g")
	if c.Layers().Has("g") {
		t.Error("Has(g) = true after Remove")
	}
}

func TestAllOrdersByZIndex(t *testing.T) {
	c := testCanvas(t)
	c.Layers().Add(
		scene.NewMorph().SetID("late").SetZIndex(10),
		scene.NewMorph().SetID("first").SetZIndex(-1),
		scene.NewMorph().SetID("mid-a"),
		scene.NewMorph().SetID("mid-b"),
	)

	got := ids(c.Layers().All())
	want := []string{"first", "mid-a", "mid-b", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() order = %v, want %v", got, want)
		}
	}
}

func TestAllIsRestartable(t *testing.T) {
	c := testCanvas(t)
	c.Layers().Add(scene.NewMorph().SetID("a"), scene.NewMorph().SetID("b"))

	seq := c.Layers().All()
	first := ids(seq)
	second := ids(seq)
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("restarted sequence lengths = %d, %d; want 2, 2", len(first), len(second))
	}
}

func TestAllEarlyBreak(t *testing.T) {
	c := testCanvas(t)
	c.Layers().Add(scene.NewMorph().SetID("a"), scene.NewMorph().SetID("b"))

	count := 0
	for range c.Layers().All() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iterated %d layers after break, want 1", count)
	}
}

func TestFlattenGroupBlockOrder(t *testing.T) {
	// A group's members form one contiguous block at the group's slot.
	// Member z-indexes order members within the block only, and never
	// interleave with outer layers.
	c := testCanvas(t)
	below := scene.NewMorph().SetID("below").SetZIndex(0)
	above := scene.NewMorph().SetID("above").SetZIndex(20)
	g := scene.NewGroup().SetID("g").SetZIndex(10).Add(
		scene.NewMorph().SetID("m-high").SetZIndex(100),
		scene.NewMorph().SetID("m-low").SetZIndex(-100),
	)
	c.Layers().Add(below, above, g)

	got := ids(c.Layers().Flatten())
	want := []string{"below", "m-low", "m-high", "above"}
	if len(got) != len(want) {
		t.Fatalf("Flatten() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Flatten() = %v, want %v", got, want)
		}
	}
}

func TestFlattenSkipsInvisible(t *testing.T) {
	c := testCanvas(t)
	hiddenGroup := scene.NewGroup().SetID("hg").SetVisible(false).Add(
		scene.NewMorph().SetID("inside"),
	)
	c.Layers().Add(
		scene.NewMorph().SetID("shown"),
		scene.NewMorph().SetID("hidden").SetVisible(false),
		hiddenGroup,
	)

	got := ids(c.Layers().Flatten())
	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("Flatten() = %v, want [shown]", got)
	}
}

func TestFlattenNestedGroups(t *testing.T) {
	c := testCanvas(t)
	inner := scene.NewGroup().SetID("inner").SetZIndex(1).Add(
		scene.NewMorph().SetID("deep"),
	)
	outer := scene.NewGroup().SetID("outer").Add(
		scene.NewMorph().SetID("shallow").SetZIndex(2),
		inner,
	)
	c.Layers().Add(outer)

	got := ids(c.Layers().Flatten())
	want := []string{"deep", "shallow"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Flatten() = %v, want %v", got, want)
		}
	}
}

func TestAddFiresLayerAdded(t *testing.T) {
	c := testCanvas(t)
	spy := &spyPlugin{name: "spy"}
	c.Plugins().Use(spy)

	c.Layers().Add(scene.NewMorph().SetID("a"), scene.NewMorph().SetID("b"))
	if len(spy.added) != 2 {
		t.Fatalf("layerAdded events = %d, want 2", len(spy.added))
	}
	if spy.added[0] != "a" || spy.added[1] != "b" {
		t.Errorf("layerAdded order = %v, want [a, b]", spy.added)
	}

	c.Layers().Remove("a")
	if len(spy.removed) != 1 || spy.removed[0] != "a" {
		t.Errorf("layerRemoved events = %v, want [a]", spy.removed)
	}
}
