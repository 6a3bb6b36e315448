package resolve

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/scene"
)

var (
	// ErrCyclicLink is the sentinel wrapped by [*CycleError]. Use
	// errors.Is(err, ErrCyclicLink) to classify, errors.As to read the path.
	ErrCyclicLink = errors.New("cyclic link")

	// ErrUnresolvedLink is the sentinel wrapped by [*UnresolvedError].
	ErrUnresolvedLink = errors.New("unresolved link")
)

// CycleError reports that link dependencies form a cycle. Path holds the
// layer IDs along the cycle, with the entry layer repeated at the end.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic link: %s", strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicLink }

// UnresolvedError reports a link whose source cannot serve it: the source
// ID does not exist in the layer tree, or the link points at its own layer.
type UnresolvedError struct {
	Layer  string
	Source string
}

func (e *UnresolvedError) Error() string {
	if e.Layer == e.Source {
		return fmt.Sprintf("unresolved link: layer %q links to itself", e.Layer)
	}
	return fmt.Sprintf("unresolved link: layer %q links to unknown source %q", e.Layer, e.Source)
}

func (e *UnresolvedError) Unwrap() error { return ErrUnresolvedLink }

// Resolved is a layer's geometry collapsed to pixels.
type Resolved struct {
	// X, Y are the resolved declared position, before anchoring.
	// For groups and point-based variants they equal the visual origin.
	X float64
	Y float64
	// W, H are the resolved size. For groups, the bounding box extent.
	W float64
	H float64
	// Origin is the anchored top-left draw origin.
	Origin geom.Point
	// Points are the resolved vertices of point-based variants, in draw
	// order. Nil for box layers and groups.
	Points []geom.Point
}

// Rect returns the visual rectangle: the anchored origin plus size.
func (r Resolved) Rect() geom.Rect {
	return geom.Rect{X: r.Origin.X, Y: r.Origin.Y, W: r.W, H: r.H}
}

// Result holds one pass's resolved geometry, keyed by layer ID.
type Result struct {
	byID map[string]Resolved
}

// Get returns the resolved geometry for a layer ID.
func (r *Result) Get(id string) (Resolved, bool) {
	res, ok := r.byID[id]
	return res, ok
}

// Len returns the number of resolved layers, groups included.
func (r *Result) Len() int { return len(r.byID) }

// IDs returns all resolved layer IDs in sorted order.
func (r *Result) IDs() []string { return slices.Sorted(maps.Keys(r.byID)) }

// Resolve evaluates every layer reachable from roots against a canvas of
// the given pixel dimensions. Groups contribute their members and resolve
// to the members' bounding box. The pass is independent of draw order and
// has no side effects on the layers.
func Resolve(roots []scene.Layer, w, h float64) (*Result, error) {
	r := &resolver{
		w:     w,
		h:     h,
		arena: make(map[string]scene.Layer),
		done:  make(map[string]Resolved),
		color: make(map[string]int),
	}
	r.index(roots)

	// Deterministic entry order keeps error reporting stable across runs.
	for _, id := range slices.Sorted(maps.Keys(r.arena)) {
		if r.color[id] == white {
			if err := r.visit(id); err != nil {
				return nil, err
			}
		}
	}
	return &Result{byID: r.done}, nil
}

const (
	white = iota
	gray
	black
)

type resolver struct {
	w, h  float64
	arena map[string]scene.Layer
	done  map[string]Resolved
	color map[string]int
	stack []string
}

func (r *resolver) index(layers []scene.Layer) {
	for _, l := range layers {
		r.arena[l.ID()] = l
		if c, ok := l.(scene.Container); ok {
			r.index(c.Children())
		}
	}
}

// visit resolves one layer depth-first: dependencies before the layer's
// own values. Gray marks layers whose dependencies are still being
// walked; reaching a gray layer again means the links loop.
func (r *resolver) visit(id string) error {
	r.color[id] = gray
	r.stack = append(r.stack, id)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
	}()

	l := r.arena[id]
	for _, dep := range r.deps(l) {
		if dep == id {
			return &UnresolvedError{Layer: id, Source: dep}
		}
		if _, ok := r.arena[dep]; !ok {
			return &UnresolvedError{Layer: id, Source: dep}
		}
		switch r.color[dep] {
		case white:
			if err := r.visit(dep); err != nil {
				return err
			}
		case gray:
			return &CycleError{Path: r.cyclePath(dep)}
		}
	}

	res, err := r.evaluate(l)
	if err != nil {
		return fmt.Errorf("resolve layer %q: %w", id, err)
	}
	r.done[id] = res
	r.color[id] = black
	return nil
}

// cyclePath slices the DFS stack from the first occurrence of the
// revisited layer and closes the loop by repeating it.
func (r *resolver) cyclePath(entry string) []string {
	start := slices.Index(r.stack, entry)
	path := slices.Clone(r.stack[start:])
	return append(path, entry)
}

// deps lists the layer IDs this layer's values read: one entry per link
// plus, for groups, every direct member.
func (r *resolver) deps(l scene.Layer) []string {
	return Dependencies(l)
}

// Dependencies lists the layer IDs a layer's values read: one entry per
// link plus, for groups, every direct member. The order follows the
// layer's value order and may contain duplicates when several values
// link the same source.
func Dependencies(l scene.Layer) []string {
	var out []string
	add := func(v geom.Value) {
		if link, ok := v.Link(); ok {
			out = append(out, link.Source)
		}
	}

	if c, ok := l.(scene.Container); ok {
		for _, child := range c.Children() {
			out = append(out, child.ID())
		}
		return out
	}
	if p, ok := l.(scene.PointsLayer); ok {
		for _, v := range p.Vertices() {
			add(v.X)
			add(v.Y)
		}
		return out
	}

	geo := l.Geometry()
	add(geo.X)
	add(geo.Y)
	add(geo.W)
	add(geo.H)
	return out
}

func (r *resolver) evaluate(l scene.Layer) (Resolved, error) {
	if c, ok := l.(scene.Container); ok {
		return r.evaluateGroup(c)
	}
	if p, ok := l.(scene.PointsLayer); ok {
		return r.evaluatePoints(p)
	}
	return r.evaluateBox(l)
}

func (r *resolver) evaluateBox(l scene.Layer) (Resolved, error) {
	geo := l.Geometry()
	x, err := r.eval(geo.X, geom.AxisX)
	if err != nil {
		return Resolved{}, fmt.Errorf("x: %w", err)
	}
	y, err := r.eval(geo.Y, geom.AxisY)
	if err != nil {
		return Resolved{}, fmt.Errorf("y: %w", err)
	}
	w, err := r.eval(geo.W, geom.AxisX)
	if err != nil {
		return Resolved{}, fmt.Errorf("width: %w", err)
	}
	h, err := r.eval(geo.H, geom.AxisY)
	if err != nil {
		return Resolved{}, fmt.Errorf("height: %w", err)
	}

	ox, oy := geo.Anchor.Origin(x, y, w, h)
	return Resolved{X: x, Y: y, W: w, H: h, Origin: geom.Point{X: ox, Y: oy}}, nil
}

// evaluatePoints resolves each vertex and derives the rectangle from
// their bounding box. Anchors do not apply to vertex lists.
func (r *resolver) evaluatePoints(p scene.PointsLayer) (Resolved, error) {
	vs := p.Vertices()
	points := make([]geom.Point, len(vs))
	for i, v := range vs {
		x, err := r.eval(v.X, geom.AxisX)
		if err != nil {
			return Resolved{}, fmt.Errorf("vertex %d x: %w", i, err)
		}
		y, err := r.eval(v.Y, geom.AxisY)
		if err != nil {
			return Resolved{}, fmt.Errorf("vertex %d y: %w", i, err)
		}
		points[i] = geom.Point{X: x, Y: y}
	}

	if len(points) == 0 {
		return Resolved{}, nil
	}
	rect := geom.Rect{X: points[0].X, Y: points[0].Y}
	for _, pt := range points[1:] {
		rect = unionPoint(rect, pt)
	}
	return Resolved{
		X:      rect.X,
		Y:      rect.Y,
		W:      rect.W,
		H:      rect.H,
		Origin: geom.Point{X: rect.X, Y: rect.Y},
		Points: points,
	}, nil
}

func unionPoint(r geom.Rect, p geom.Point) geom.Rect {
	minX := min(r.X, p.X)
	minY := min(r.Y, p.Y)
	maxX := max(r.MaxX(), p.X)
	maxY := max(r.MaxY(), p.Y)
	return geom.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// evaluateGroup unions the members' visual rectangles. Members are
// already resolved because the group depends on each of them.
func (r *resolver) evaluateGroup(g scene.Container) (Resolved, error) {
	var bbox geom.Rect
	first := true
	for _, child := range g.Children() {
		res := r.done[child.ID()]
		if first {
			bbox = res.Rect()
			first = false
			continue
		}
		bbox = bbox.Union(res.Rect())
	}
	return Resolved{
		X:      bbox.X,
		Y:      bbox.Y,
		W:      bbox.W,
		H:      bbox.H,
		Origin: geom.Point{X: bbox.X, Y: bbox.Y},
	}, nil
}

// eval collapses one value to pixels. Links read the already-resolved
// source component and add their spacing, which resolves on the same
// axis the value sits on.
func (r *resolver) eval(v geom.Value, axis geom.Axis) (float64, error) {
	link, ok := v.Link()
	if !ok {
		return v.Resolve(axis, r.w, r.h)
	}
	if link.Spacing.IsLink() {
		return 0, geom.ErrLinkSpacing
	}

	src := r.done[link.Source]
	var base float64
	switch link.Type {
	case geom.LinkX:
		base = src.X
	case geom.LinkY:
		base = src.Y
	case geom.LinkWidth:
		base = src.W
	case geom.LinkHeight:
		base = src.H
	default:
		return 0, fmt.Errorf("%w: %q", geom.ErrInvalidLinkType, link.Type)
	}

	spacing, err := link.Spacing.Resolve(axis, r.w, r.h)
	if err != nil {
		return 0, fmt.Errorf("link spacing: %w", err)
	}
	return base + spacing, nil
}
