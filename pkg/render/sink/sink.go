// Package sink declares the drawing contract between the render
// manager and its surface backends.
package sink

import (
	"github.com/matzehuels/layercake/pkg/resolve"
	"github.com/matzehuels/layercake/pkg/scene"
)

// Op is one draw call: a layer together with its resolved geometry for
// the current pass. The layer supplies style and content, the resolved
// part supplies pixel coordinates.
type Op struct {
	Layer    scene.Layer
	Resolved resolve.Resolved
}

// Surface is the drawing backend one render pass draws against. A
// surface is sized at construction and receives draw calls in z-order;
// it dispatches on the concrete layer type. Implementations are not
// safe for concurrent use - a pass is single-threaded by contract.
//
// The two implementations are rastersink (fogleman/gg pixels) and
// svgsink (vector elements).
type Surface interface {
	// Reset blanks the surface back to fully transparent. Animated
	// passes call this between frames unless the canvas accumulates.
	Reset()

	// Draw renders one layer. Unknown concrete types are an error.
	Draw(op Op) error
}
