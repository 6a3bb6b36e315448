// Package canvas owns the scene state: pixel dimensions, the layer
// registry, animation policy and the plugin hook bus.
//
// # Overview
//
// A [Canvas] is the top-level object callers compose scenes on. It holds
// exactly one layer tree through its [Layers] manager, animation settings
// through [Anim], and installed plugins through [Plugins]. Rendering
// lives in a separate package; the canvas only describes.
//
//	c, err := canvas.New(800, 600)
//	if err != nil { ... }
//	err = c.Layers().Add(
//		scene.NewMorph().SetID("bg").SetSize(geom.Percent(100), geom.Percent(100)),
//		scene.NewText("hello").SetID("title").SetZIndex(1),
//	)
//
// # Ordering
//
// Layers draw in ascending z-index, ties broken by insertion order.
// [Layers.All] iterates the top-level entries in that order; [Layers.Flatten]
// additionally expands groups, emitting each group's members as one
// contiguous block at the group's slot.
//
// # Plugins
//
// A [Plugin] installs against a canvas and may implement any of the hook
// interfaces ([BeforeRenderHook], [ResizeHook], ...) to observe lifecycle
// events. Hooks run in registration order. A panicking hook never aborts
// the pipeline: the panic converts to an error and fans out as an onError
// event to the other plugins.
//
// # Concurrency
//
// One canvas is single-threaded by contract: callers serialize mutation
// and rendering, and none of the managers lock. Independent canvases are
// fully isolated and may run concurrently; a shared font registry is the
// only sanctioned common state.
package canvas
