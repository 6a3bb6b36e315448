package canvas

import (
	"errors"
	"fmt"

	"github.com/matzehuels/layercake/pkg/scene"
)

var (
	// ErrInstallFailed wraps the error a plugin's Install returned. The
	// plugin is not registered when installation fails.
	ErrInstallFailed = errors.New("plugin install failed")

	// ErrPluginNotFound is returned by [Plugins.Unregister] when no
	// plugin with the name is registered.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrDuplicatePlugin is returned by [Plugins.Use] when a plugin with
	// the same name is already registered.
	ErrDuplicatePlugin = errors.New("plugin already registered")
)

// Hook names a lifecycle event plugins can observe.
type Hook string

const (
	HookBeforeRender   Hook = "beforeRender"
	HookAfterRender    Hook = "afterRender"
	HookResize         Hook = "onResize"
	HookLayerAdded     Hook = "onLayerAdded"
	HookLayerRemoved   Hook = "onLayerRemoved"
	HookCanvasCreated  Hook = "onCanvasCreated"
	HookAnimationFrame Hook = "onAnimationFrame"
	HookError          Hook = "onError"
)

// Plugin extends a canvas. Install runs once at registration and is the
// place to add layers, register fonts or capture the canvas reference.
// Implement any of the hook interfaces to observe lifecycle events.
type Plugin interface {
	Name() string
	Version() string
	Install(c *Canvas) error
}

// Uninstaller is implemented by plugins that need teardown when
// unregistered.
type Uninstaller interface {
	Uninstall(c *Canvas) error
}

// Hook capability interfaces. A plugin implements any subset; the bus
// discovers them by type assertion at dispatch time.
type (
	// BeforeRenderHook fires at the start of every render pass.
	BeforeRenderHook interface {
		BeforeRender(c *Canvas)
	}

	// AfterRenderHook fires once per render call, after encoding.
	AfterRenderHook interface {
		AfterRender(c *Canvas)
	}

	// ResizeHook fires after [Canvas.Resize] scaled the scene. It is a
	// notification only; implementations must not assume a render follows.
	ResizeHook interface {
		OnResize(c *Canvas, ratio float64)
	}

	// LayerAddedHook fires once per top-level layer added.
	LayerAddedHook interface {
		OnLayerAdded(c *Canvas, l scene.Layer)
	}

	// LayerRemovedHook fires with the layer removed from the tree.
	LayerRemovedHook interface {
		OnLayerRemoved(c *Canvas, l scene.Layer)
	}

	// CanvasCreatedHook fires once when [New] completes.
	CanvasCreatedHook interface {
		OnCanvasCreated(c *Canvas)
	}

	// AnimationFrameHook fires before each animated frame draws, with
	// the frame index and its timestamp in seconds.
	AnimationFrameHook interface {
		OnAnimationFrame(c *Canvas, frame int, t float64)
	}

	// ErrorHook receives failures of other plugins' hooks. A panicking
	// ErrorHook is logged and dropped, never re-dispatched.
	ErrorHook interface {
		OnError(c *Canvas, hook Hook, err error)
	}
)

// Plugins is the canvas plugin bus. Dispatch order is registration
// order. Not safe for concurrent use; one canvas is single-threaded by
// contract.
type Plugins struct {
	canvas *Canvas
	list   []Plugin
}

func newPlugins(c *Canvas) *Plugins {
	return &Plugins{canvas: c}
}

// Use installs and registers a plugin. When Install fails, the error is
// wrapped with [ErrInstallFailed] and the plugin is not registered.
func (p *Plugins) Use(plugin Plugin) error {
	for _, existing := range p.list {
		if existing.Name() == plugin.Name() {
			return fmt.Errorf("%w: %q", ErrDuplicatePlugin, plugin.Name())
		}
	}
	if err := plugin.Install(p.canvas); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInstallFailed, plugin.Name(), err)
	}

	p.list = append(p.list, plugin)
	p.canvas.logger.Debug("plugin installed", "name", plugin.Name(), "version", plugin.Version())
	return nil
}

// Unregister removes the named plugin, calling its Uninstall first when
// implemented. An Uninstall error aborts the removal.
func (p *Plugins) Unregister(name string) error {
	for i, plugin := range p.list {
		if plugin.Name() != name {
			continue
		}
		if u, ok := plugin.(Uninstaller); ok {
			if err := u.Uninstall(p.canvas); err != nil {
				return fmt.Errorf("uninstall %s: %w", name, err)
			}
		}
		p.list = append(p.list[:i], p.list[i+1:]...)
		p.canvas.logger.Debug("plugin unregistered", "name", name)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrPluginNotFound, name)
}

// Get returns the registered plugin with the given name.
func (p *Plugins) Get(name string) (Plugin, bool) {
	for _, plugin := range p.list {
		if plugin.Name() == name {
			return plugin, true
		}
	}
	return nil, false
}

// Names returns the registered plugin names in registration order.
func (p *Plugins) Names() []string {
	names := make([]string, len(p.list))
	for i, plugin := range p.list {
		names[i] = plugin.Name()
	}
	return names
}

// Len returns the number of registered plugins.
func (p *Plugins) Len() int { return len(p.list) }

// FireBeforeRender dispatches the beforeRender event. The render manager
// calls this at the start of every pass.
func (p *Plugins) FireBeforeRender() {
	for _, plugin := range p.list {
		if h, ok := plugin.(BeforeRenderHook); ok {
			p.guard(plugin, HookBeforeRender, func() { h.BeforeRender(p.canvas) })
		}
	}
}

// FireAfterRender dispatches the afterRender event, once per render call.
func (p *Plugins) FireAfterRender() {
	for _, plugin := range p.list {
		if h, ok := plugin.(AfterRenderHook); ok {
			p.guard(plugin, HookAfterRender, func() { h.AfterRender(p.canvas) })
		}
	}
}

// FireAnimationFrame dispatches the onAnimationFrame event for frame i
// at timestamp t seconds.
func (p *Plugins) FireAnimationFrame(i int, t float64) {
	for _, plugin := range p.list {
		if h, ok := plugin.(AnimationFrameHook); ok {
			p.guard(plugin, HookAnimationFrame, func() { h.OnAnimationFrame(p.canvas, i, t) })
		}
	}
}

func (p *Plugins) fireResize(ratio float64) {
	for _, plugin := range p.list {
		if h, ok := plugin.(ResizeHook); ok {
			p.guard(plugin, HookResize, func() { h.OnResize(p.canvas, ratio) })
		}
	}
}

func (p *Plugins) fireLayerAdded(l scene.Layer) {
	for _, plugin := range p.list {
		if h, ok := plugin.(LayerAddedHook); ok {
			p.guard(plugin, HookLayerAdded, func() { h.OnLayerAdded(p.canvas, l) })
		}
	}
}

func (p *Plugins) fireLayerRemoved(l scene.Layer) {
	for _, plugin := range p.list {
		if h, ok := plugin.(LayerRemovedHook); ok {
			p.guard(plugin, HookLayerRemoved, func() { h.OnLayerRemoved(p.canvas, l) })
		}
	}
}

func (p *Plugins) fireCanvasCreated() {
	for _, plugin := range p.list {
		if h, ok := plugin.(CanvasCreatedHook); ok {
			p.guard(plugin, HookCanvasCreated, func() { h.OnCanvasCreated(p.canvas) })
		}
	}
}

// guard runs one hook callback, converting a panic into an error event.
// The pipeline and the other plugins keep running either way.
func (p *Plugins) guard(origin Plugin, hook Hook, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("plugin %s: %s panicked: %v", origin.Name(), hook, r)
			p.canvas.logger.Warn("plugin hook failed", "plugin", origin.Name(), "hook", hook, "err", r)
			p.fireError(origin, hook, err)
		}
	}()
	fn()
}

// fireError fans a hook failure out to every plugin except the one that
// failed. A panicking error handler is logged and dropped - there is no
// second level of re-dispatch.
func (p *Plugins) fireError(origin Plugin, hook Hook, err error) {
	for _, plugin := range p.list {
		if plugin == origin {
			continue
		}
		h, ok := plugin.(ErrorHook)
		if !ok {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.canvas.logger.Warn("onError handler panicked",
						"plugin", plugin.Name(), "origin", origin.Name(), "err", r)
				}
			}()
			h.OnError(p.canvas, hook, err)
		}()
	}
}
