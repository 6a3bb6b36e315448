package canvas

// ColorSpace selects the pixel format frames are reduced to before
// palette quantization in animated exports.
type ColorSpace string

const (
	// ColorSpaceRGBA8888 keeps full 8-bit channels.
	ColorSpaceRGBA8888 ColorSpace = "rgba8888"
	// ColorSpaceRGB565 reduces to 5-6-5 bit channels before
	// quantization, shrinking palettes for flat-colored scenes.
	ColorSpaceRGB565 ColorSpace = "rgb565"
)

// Animation defaults.
const (
	DefaultFrameRate = 30
	DefaultMaxColors = 256
)

// Anim is the canvas animation policy: pure configuration read by the
// render manager during animated passes. It never renders anything
// itself. All setters are fluent.
type Anim struct {
	frameRate    int
	maxColors    int
	colorSpace   ColorSpace
	loop         bool
	transparency bool
	bufferSize   int
	clear        bool
}

func newAnim() *Anim {
	return &Anim{
		frameRate:  DefaultFrameRate,
		maxColors:  DefaultMaxColors,
		colorSpace: ColorSpaceRGBA8888,
		loop:       true,
		clear:      true,
	}
}

// FrameRate returns frames per second for animated passes.
func (a *Anim) FrameRate() int { return a.frameRate }

// MaxColors returns the palette cap for quantized encodings.
func (a *Anim) MaxColors() int { return a.maxColors }

// ColorSpace returns the pre-quantization pixel format.
func (a *Anim) ColorSpace() ColorSpace { return a.colorSpace }

// Loop reports whether animated encodings repeat indefinitely.
func (a *Anim) Loop() bool { return a.loop }

// Transparency reports whether animated encodings keep an alpha channel.
func (a *Anim) Transparency() bool { return a.transparency }

// BufferSize returns how many rendered frames the render manager retains
// before it must flush to the encoder. Zero means unbounded.
func (a *Anim) BufferSize() int { return a.bufferSize }

// Clear reports whether each frame starts from a blank canvas. When
// false, frames accumulate on top of the previous one.
func (a *Anim) Clear() bool { return a.clear }

// SetFrameRate sets frames per second. Values below 1 reset the default.
func (a *Anim) SetFrameRate(fps int) *Anim {
	if fps < 1 {
		fps = DefaultFrameRate
	}
	a.frameRate = fps
	return a
}

// SetMaxColors caps the palette for quantized encodings at n, clamped
// to [2, 256].
func (a *Anim) SetMaxColors(n int) *Anim {
	a.maxColors = min(max(n, 2), 256)
	return a
}

// SetColorSpace selects the pre-quantization pixel format. Unknown
// values keep the current one.
func (a *Anim) SetColorSpace(cs ColorSpace) *Anim {
	if cs == ColorSpaceRGBA8888 || cs == ColorSpaceRGB565 {
		a.colorSpace = cs
	}
	return a
}

// SetLoop toggles indefinite repetition of animated encodings.
func (a *Anim) SetLoop(loop bool) *Anim { a.loop = loop; return a }

// SetTransparency toggles the alpha channel in animated encodings.
func (a *Anim) SetTransparency(t bool) *Anim { a.transparency = t; return a }

// SetBufferSize bounds the frame buffer; the render manager flushes to
// the encoder whenever the bound is reached. Zero or negative means
// unbounded.
func (a *Anim) SetBufferSize(n int) *Anim {
	a.bufferSize = max(n, 0)
	return a
}

// SetClear toggles whether each animated frame starts blank or
// accumulates the previous frame.
func (a *Anim) SetClear(clear bool) *Anim { a.clear = clear; return a }
