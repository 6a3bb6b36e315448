package canvas

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/layercake/pkg/fonts"
	"github.com/matzehuels/layercake/pkg/scene"
)

var (
	// ErrInvalidDimensions is returned by [New] when width or height is
	// not positive.
	ErrInvalidDimensions = errors.New("canvas dimensions must be positive")

	// ErrInvalidRatio is returned by [Canvas.Resize] for ratios that are
	// zero, negative, or not finite.
	ErrInvalidRatio = errors.New("resize ratio must be positive and finite")
)

// Canvas owns one scene: pixel dimensions, the layer tree, animation
// policy and installed plugins. Construct with [New]; the zero value is
// not usable.
type Canvas struct {
	id      string
	width   int
	height  int
	logger  *log.Logger
	fonts   *fonts.Registry
	layers  *Layers
	anim    *Anim
	plugins *Plugins
}

type config struct {
	id      string
	logger  *log.Logger
	fonts   *fonts.Registry
	plugins []Plugin
}

// Option configures a canvas during [New].
type Option func(*config)

// WithLogger sets the canvas logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithFonts sets the font registry. The default carries the embedded Go
// fonts. Independent canvases may share one registry.
func WithFonts(r *fonts.Registry) Option {
	return func(cfg *config) { cfg.fonts = r }
}

// WithID overrides the generated canvas ID.
func WithID(id string) Option {
	return func(cfg *config) { cfg.id = id }
}

// WithPlugins installs plugins during [New], in argument order, before
// the onCanvasCreated event fires. An installation failure fails New.
func WithPlugins(plugins ...Plugin) Option {
	return func(cfg *config) { cfg.plugins = append(cfg.plugins, plugins...) }
}

// New creates a canvas with the given pixel dimensions.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.fonts == nil {
		cfg.fonts = fonts.Default()
	}

	c := &Canvas{
		id:     cfg.id,
		width:  width,
		height: height,
		logger: cfg.logger,
		fonts:  cfg.fonts,
	}
	c.layers = newLayers(c)
	c.anim = newAnim()
	c.plugins = newPlugins(c)

	for _, p := range cfg.plugins {
		if err := c.plugins.Use(p); err != nil {
			return nil, err
		}
	}

	c.plugins.fireCanvasCreated()
	c.logger.Debug("canvas created", "id", c.id, "width", width, "height", height)
	return c, nil
}

// ID returns the canvas identity.
func (c *Canvas) ID() string { return c.id }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Logger returns the canvas logger.
func (c *Canvas) Logger() *log.Logger { return c.logger }

// Fonts returns the font registry.
func (c *Canvas) Fonts() *fonts.Registry { return c.fonts }

// Layers returns the layer manager.
func (c *Canvas) Layers() *Layers { return c.layers }

// Anim returns the animation policy.
func (c *Canvas) Anim() *Anim { return c.anim }

// Plugins returns the plugin bus.
func (c *Canvas) Plugins() *Plugins { return c.plugins }

// Resize scales the canvas dimensions and the absolute parts of every
// layer's declared geometry by ratio. Percent and viewport values stay
// untouched - they track the new dimensions by definition. The onResize
// event fires after scaling; resizing never triggers a render.
func (c *Canvas) Resize(ratio float64) error {
	if ratio <= 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	c.width = max(1, int(math.Round(float64(c.width)*ratio)))
	c.height = max(1, int(math.Round(float64(c.height)*ratio)))
	for _, l := range c.layers.roots {
		scene.ScaleGeometry(l, ratio)
	}

	c.plugins.fireResize(ratio)
	c.logger.Debug("canvas resized", "ratio", ratio, "width", c.width, "height", c.height)
	return nil
}
