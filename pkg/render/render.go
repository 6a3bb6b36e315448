// Package render turns a canvas into encoded artifacts. A Manager owns
// one canvas and drives the full pass: plugin hooks, geometry
// resolution, z-ordered surface draws, and encoding. Sinks live in the
// rastersink and svgsink subpackages.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/matzehuels/layercake/pkg/canvas"
	"github.com/matzehuels/layercake/pkg/render/rastersink"
	"github.com/matzehuels/layercake/pkg/render/svgsink"
	"github.com/matzehuels/layercake/pkg/resolve"
)

var (
	// ErrUnsupportedFormat is returned for formats the manager cannot
	// produce, or format/option combinations that make no sense.
	ErrUnsupportedFormat = errors.New("render: unsupported format")
	// ErrEncodingFailed wraps codec errors from the encoding backends.
	ErrEncodingFailed = errors.New("render: encoding failed")
	// ErrNoFrames is returned when an animated pass resolves to zero
	// frames.
	ErrNoFrames = errors.New("render: animation has no frames")
)

// Format names an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatGIF  Format = "gif"
	// FormatRaw returns the raw RGBA pixel buffer without encoding.
	FormatRaw Format = "raw"
	// FormatContext hands back the live drawing context instead of
	// encoded bytes, for callers that keep drawing.
	FormatContext Format = "ctx"
)

// ParseFormat normalizes a format name. "jpg" aliases jpeg.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatJPEG, FormatSVG, FormatGIF, FormatRaw, FormatContext:
		return f, nil
	case "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatContext {
		return ""
	}
	return string(f)
}

// Animated reports whether the format can hold more than one frame.
func (f Format) Animated() bool { return f == FormatGIF }

// Target selects what one Render call produces.
type Target struct {
	Format Format
	// Frames bounds an animated pass. Zero with a zero Duration renders
	// a single static frame.
	Frames int
	// Duration bounds an animated pass by wall time at the canvas frame
	// rate. When both Frames and Duration are set the smaller bound
	// wins.
	Duration time.Duration
	// Quality applies to JPEG encoding, 1-100. Zero means 90.
	Quality int
}

// Output is the result of one Render call. Data holds the encoded
// artifact; Image the final raster frame for pixel formats; Context the
// live drawing context for FormatContext; Frames the number of frames
// an animated pass produced.
type Output struct {
	Format  Format
	Data    []byte
	Image   image.Image
	Context *gg.Context
	Frames  int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger overrides the canvas logger for render-pass logging.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// Manager renders one canvas. Construct with [New].
type Manager struct {
	canvas *canvas.Canvas
	logger *log.Logger
}

// New returns a manager for the canvas.
func New(c *canvas.Canvas, opts ...Option) *Manager {
	m := &Manager{canvas: c, logger: c.Logger()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Render produces the target's artifact. Before/after render hooks fire
// exactly once per call; animated targets additionally fire the frame
// hook per frame. Resolution errors abort the pass.
func (m *Manager) Render(ctx context.Context, t Target) (*Output, error) {
	f, err := ParseFormat(string(t.Format))
	if err != nil {
		return nil, err
	}
	t.Format = f
	if t.Format.Animated() && (t.Frames > 0 || t.Duration > 0) {
		return m.renderAnimated(ctx, t)
	}
	return m.renderStatic(ctx, t)
}

func (m *Manager) renderStatic(ctx context.Context, t Target) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := m.canvas.Width(), m.canvas.Height()
	m.logger.Debug("rendering static pass", "canvas", m.canvas.ID(), "format", t.Format)

	m.canvas.Plugins().FireBeforeRender()

	if t.Format == FormatSVG {
		s := svgsink.New(w, h)
		if err := m.drawScene(s); err != nil {
			return nil, err
		}
		out := &Output{Format: t.Format, Data: s.Bytes()}
		m.canvas.Plugins().FireAfterRender()
		return out, nil
	}

	s := rastersink.New(w, h, m.canvas.Fonts())
	if err := m.drawScene(s); err != nil {
		return nil, err
	}
	out, err := m.encodeRaster(s, t)
	if err != nil {
		return nil, err
	}
	m.canvas.Plugins().FireAfterRender()
	return out, nil
}

func (m *Manager) renderAnimated(ctx context.Context, t Target) (*Output, error) {
	anim := m.canvas.Anim()
	frames := frameCount(t, anim.FrameRate())
	if frames <= 0 {
		return nil, ErrNoFrames
	}
	w, h := m.canvas.Width(), m.canvas.Height()
	m.logger.Debug("rendering animated pass",
		"canvas", m.canvas.ID(), "format", t.Format, "frames", frames, "fps", anim.FrameRate())

	m.canvas.Plugins().FireBeforeRender()

	s := rastersink.New(w, h, m.canvas.Fonts())
	enc := newGIFEncoder(anim)

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.canvas.Plugins().FireAnimationFrame(i, float64(i)/float64(anim.FrameRate()))

		if anim.Clear() {
			s.Reset()
		}
		if err := m.drawScene(s); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		enc.add(s.Snapshot())
	}

	data, err := enc.encode()
	if err != nil {
		return nil, err
	}
	out := &Output{Format: t.Format, Data: data, Image: s.Image(), Frames: frames}
	m.canvas.Plugins().FireAfterRender()
	return out, nil
}

// drawScene resolves the scene against the canvas dimensions and draws
// every visible drawable in z order. Called once per frame: animated
// tweens mutate layers between frames, so geometry re-resolves each
// time.
func (m *Manager) drawScene(s Surface) error {
	c := m.canvas
	result, err := resolve.Resolve(c.Layers().Roots(), float64(c.Width()), float64(c.Height()))
	if err != nil {
		return err
	}
	for l := range c.Layers().Flatten() {
		res, ok := result.Get(l.ID())
		if !ok {
			continue
		}
		if err := s.Draw(Op{Layer: l, Resolved: res}); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) encodeRaster(s *rastersink.Surface, t Target) (*Output, error) {
	img := s.Image()
	out := &Output{Format: t.Format, Image: img, Frames: 1}

	var buf bytes.Buffer
	switch t.Format {
	case FormatContext:
		out.Context = s.Context()
		return out, nil
	case FormatRaw:
		out.Data = bytes.Clone(img.(*image.RGBA).Pix)
		return out, nil
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: png: %v", ErrEncodingFailed, err)
		}
	case FormatJPEG:
		quality := t.Quality
		if quality <= 0 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("%w: jpeg: %v", ErrEncodingFailed, err)
		}
	case FormatGIF:
		enc := newGIFEncoder(m.canvas.Anim())
		enc.add(s.Snapshot())
		data, err := enc.encode()
		if err != nil {
			return nil, err
		}
		out.Data = data
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, t.Format)
	}
	out.Data = buf.Bytes()
	return out, nil
}

// frameCount derives the animated frame bound from the target. When
// both Frames and Duration are set the smaller bound wins.
func frameCount(t Target, fps int) int {
	frames := t.Frames
	if t.Duration > 0 {
		byTime := int(t.Duration.Seconds() * float64(fps))
		if frames == 0 || byTime < frames {
			frames = byTime
		}
	}
	return frames
}
