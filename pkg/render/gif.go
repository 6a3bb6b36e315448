package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/matzehuels/layercake/pkg/canvas"
)

// gifEncoder palettizes frames against the canvas animation policy. A
// bounded buffer keeps at most BufferSize raw frames alive; full buffers
// flush to paletted frames immediately so long animations stay at a
// fixed raw-frame footprint.
type gifEncoder struct {
	anim    *canvas.Anim
	pending []*image.RGBA
	out     gif.GIF
}

func newGIFEncoder(anim *canvas.Anim) *gifEncoder {
	return &gifEncoder{anim: anim}
}

// add admits one frame, flushing when the buffer hits the policy bound.
// A bound of zero buffers without limit.
func (e *gifEncoder) add(frame *image.RGBA) {
	e.pending = append(e.pending, frame)
	if size := e.anim.BufferSize(); size > 0 && len(e.pending) >= size {
		e.flush()
	}
}

// flush palettizes and releases the buffered frames.
func (e *gifEncoder) flush() {
	// GIF delays tick in centiseconds; round to the nearest tick and
	// never drop to zero, which players treat as "as fast as possible".
	fps := e.anim.FrameRate()
	delay := (100 + fps/2) / fps
	if delay < 1 {
		delay = 1
	}
	for _, frame := range e.pending {
		e.out.Image = append(e.out.Image, e.palettize(frame))
		e.out.Delay = append(e.out.Delay, delay)
	}
	e.pending = e.pending[:0]
}

// encode flushes the remainder and assembles the GIF stream.
func (e *gifEncoder) encode() ([]byte, error) {
	e.flush()
	if len(e.out.Image) == 0 {
		return nil, ErrNoFrames
	}

	// LoopCount 0 loops forever; -1 plays once.
	e.out.LoopCount = -1
	if e.anim.Loop() {
		e.out.LoopCount = 0
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &e.out); err != nil {
		return nil, fmt.Errorf("%w: gif: %v", ErrEncodingFailed, err)
	}
	return buf.Bytes(), nil
}

// palettize quantizes one frame to the policy palette and dithers the
// pixels onto it.
func (e *gifEncoder) palettize(frame *image.RGBA) *image.Paletted {
	src := frame
	if e.anim.ColorSpace() == canvas.ColorSpaceRGB565 {
		src = reduceRGB565(frame)
	}

	q := quantize.MedianCutQuantizer{AddTransparent: e.anim.Transparency()}
	palette := q.Quantize(make(color.Palette, 0, e.anim.MaxColors()), src)

	p := image.NewPaletted(src.Bounds(), palette)
	draw.FloydSteinberg.Draw(p, src.Bounds(), src, image.Point{})
	return p
}

// reduceRGB565 masks each channel to 5-6-5 bit depth before
// quantization, shrinking the color population the quantizer sees.
func reduceRGB565(frame *image.RGBA) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	copy(out.Pix, frame.Pix)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		out.Pix[i] &= 0xf8   // R: 5 bits
		out.Pix[i+1] &= 0xfc // G: 6 bits
		out.Pix[i+2] &= 0xf8 // B: 5 bits
	}
	return out
}
