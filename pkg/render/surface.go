package render

import "github.com/matzehuels/layercake/pkg/render/sink"

// Op and Surface live in the leaf sink package so surface backends can
// implement the contract without importing the manager. Aliased here so
// callers keep working against render.Op and render.Surface.
type (
	Op      = sink.Op
	Surface = sink.Surface
)
