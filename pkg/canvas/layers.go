package canvas

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/matzehuels/layercake/pkg/scene"
)

var (
	// ErrDuplicateID is returned by [Layers.Add] when a layer's ID, or
	// the ID of any nested group member, is already registered. The
	// existing layer stays; the whole batch is rejected.
	ErrDuplicateID = errors.New("duplicate layer ID")

	// ErrNotFound is returned by [Layers.Remove] when no layer in the
	// tree carries the ID.
	ErrNotFound = errors.New("layer not found")
)

// Layers is the canvas layer registry. It owns the top-level entries in
// insertion order and indexes every layer in the tree, group members
// included, by ID. Not safe for concurrent use; one canvas is
// single-threaded by contract.
type Layers struct {
	canvas *Canvas
	roots  []scene.Layer
	index  map[string]scene.Layer
}

func newLayers(c *Canvas) *Layers {
	return &Layers{canvas: c, index: make(map[string]scene.Layer)}
}

// Add registers layers as top-level entries, in argument order. IDs must
// be unique across the entire tree: the batch is validated first, nested
// group members included, and rejected whole with [ErrDuplicateID] on any
// collision - already registered layers are never displaced. The
// onLayerAdded event fires once per added top-level layer.
func (l *Layers) Add(layers ...scene.Layer) error {
	seen := make(map[string]struct{})
	for _, candidate := range layers {
		for _, id := range collectIDs(candidate) {
			if _, exists := l.index[id]; exists {
				return fmt.Errorf("%w: %q", ErrDuplicateID, id)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateID, id)
			}
			seen[id] = struct{}{}
		}
	}

	for _, candidate := range layers {
		l.roots = append(l.roots, candidate)
		l.indexTree(candidate)
		l.canvas.plugins.fireLayerAdded(candidate)
		l.canvas.logger.Debug("layer added", "id", candidate.ID(), "kind", candidate.Kind())
	}
	return nil
}

// Remove drops the layer with the given ID from the tree, wherever it
// sits: top-level entries are removed directly, group members through
// their group. Returns [ErrNotFound] when the ID is unknown. The
// onLayerRemoved event fires with the removed layer.
func (l *Layers) Remove(id string) error {
	removed, ok := l.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	for i, root := range l.roots {
		if root.ID() == id {
			l.roots = append(l.roots[:i], l.roots[i+1:]...)
			break
		}
		if g, isGroup := root.(*scene.Group); isGroup && g.Remove(id) {
			break
		}
	}

	for _, gone := range collectIDs(removed) {
		delete(l.index, gone)
	}
	l.canvas.plugins.fireLayerRemoved(removed)
	l.canvas.logger.Debug("layer removed", "id", id)
	return nil
}

// Get returns the layer with the given ID from anywhere in the tree.
func (l *Layers) Get(id string) (scene.Layer, bool) {
	layer, ok := l.index[id]
	return layer, ok
}

// Has reports whether any layer in the tree carries the ID.
func (l *Layers) Has(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Len returns the number of top-level entries.
func (l *Layers) Len() int { return len(l.roots) }

// Roots returns the top-level entries in insertion order. The slice is
// shared with the registry; callers must not modify it.
func (l *Layers) Roots() []scene.Layer { return l.roots }

// All iterates the top-level entries in draw order: ascending z-index,
// ties broken by insertion order. The sequence is finite and restartable;
// groups appear as single entries.
func (l *Layers) All() iter.Seq[scene.Layer] {
	return func(yield func(scene.Layer) bool) {
		for _, layer := range sortByZ(l.roots) {
			if !yield(layer) {
				return
			}
		}
	}
}

// Flatten iterates the drawable layers in render order. Groups expand in
// place: members appear as one contiguous block at the group's slot,
// ordered among themselves by their own z-indexes. Invisible layers and
// entire invisible subtrees are skipped - they still resolve as link
// sources, they just do not draw.
func (l *Layers) Flatten() iter.Seq[scene.Layer] {
	return func(yield func(scene.Layer) bool) {
		flattenInto(l.roots, yield)
	}
}

func flattenInto(layers []scene.Layer, yield func(scene.Layer) bool) bool {
	for _, layer := range sortByZ(layers) {
		if !layer.Visible() {
			continue
		}
		if g, ok := layer.(scene.Container); ok {
			if !flattenInto(g.Children(), yield) {
				return false
			}
			continue
		}
		if !yield(layer) {
			return false
		}
	}
	return true
}

// sortByZ returns a copy ordered by ascending z-index, insertion order
// preserved on ties.
func sortByZ(layers []scene.Layer) []scene.Layer {
	sorted := make([]scene.Layer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex() < sorted[j].ZIndex()
	})
	return sorted
}

func (l *Layers) indexTree(layer scene.Layer) {
	l.index[layer.ID()] = layer
	if g, ok := layer.(scene.Container); ok {
		for _, child := range g.Children() {
			l.indexTree(child)
		}
	}
}

func collectIDs(layer scene.Layer) []string {
	ids := []string{layer.ID()}
	if g, ok := layer.(scene.Container); ok {
		for _, child := range g.Children() {
			ids = append(ids, collectIDs(child)...)
		}
	}
	return ids
}
