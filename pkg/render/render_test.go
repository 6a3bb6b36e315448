package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/layercake/pkg/canvas"
	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/scene"
)

func testCanvas(t *testing.T, w, h int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(w, h)
	if err != nil {
		t.Fatalf("canvas.New() error = %v", err)
	}
	m := scene.NewMorph().SetID("box").
		SetPosition(geom.Px(10), geom.Px(10)).
		SetSize(geom.Px(20), geom.Px(20)).
		SetFill(scene.SolidPaint("#1e6fd9"))
	if err := c.Layers().Add(m); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	return c
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{" svg ", FormatSVG, false},
		{"gif", FormatGIF, false},
		{"raw", FormatRaw, false},
		{"ctx", FormatContext, false},
		{"bmp", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	c := testCanvas(t, 80, 60)
	out, err := New(c).Render(context.Background(), Target{Format: FormatPNG})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.HasPrefix(out.Data, []byte("\x89PNG")) {
		t.Error("Data missing PNG signature")
	}
	if out.Image == nil {
		t.Error("Image = nil, want final frame")
	}
	if out.Frames != 1 {
		t.Errorf("Frames = %d, want 1", out.Frames)
	}
}

func TestRenderSVG(t *testing.T) {
	c := testCanvas(t, 80, 60)
	out, err := New(c).Render(context.Background(), Target{Format: FormatSVG})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out.Data), "<svg") {
		t.Errorf("Data missing svg root:\n%s", out.Data)
	}
}

func TestRenderRawAndContext(t *testing.T) {
	c := testCanvas(t, 10, 10)
	m := New(c)

	raw, err := m.Render(context.Background(), Target{Format: FormatRaw})
	if err != nil {
		t.Fatalf("Render(raw) error = %v", err)
	}
	if len(raw.Data) != 10*10*4 {
		t.Errorf("raw Data length = %d, want %d", len(raw.Data), 10*10*4)
	}

	cc, err := m.Render(context.Background(), Target{Format: FormatContext})
	if err != nil {
		t.Fatalf("Render(ctx) error = %v", err)
	}
	if cc.Context == nil {
		t.Error("Context = nil, want live drawing context")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	c := testCanvas(t, 10, 10)
	_, err := New(c).Render(context.Background(), Target{Format: "bmp"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Render() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRenderNormalizesFormatAlias(t *testing.T) {
	c := testCanvas(t, 10, 10)
	out, err := New(c).Render(context.Background(), Target{Format: "jpg"})
	if err != nil {
		t.Fatalf("Render(jpg) error = %v", err)
	}
	if out.Format != FormatJPEG {
		t.Errorf("Format = %v, want %v", out.Format, FormatJPEG)
	}
	if !bytes.HasPrefix(out.Data, []byte("\xff\xd8")) {
		t.Error("Data missing JPEG signature")
	}
}

func TestRenderCanceledContext(t *testing.T) {
	c := testCanvas(t, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(c).Render(ctx, Target{Format: FormatPNG}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

// hookRecorder counts lifecycle hook invocations.
type hookRecorder struct {
	before, after int
	frames        []float64
	errs          []error
}

func (*hookRecorder) Name() string                    { return "recorder" }
func (*hookRecorder) Version() string                 { return "1.0.0" }
func (*hookRecorder) Install(*canvas.Canvas) error    { return nil }
func (r *hookRecorder) BeforeRender(*canvas.Canvas)   { r.before++ }
func (r *hookRecorder) AfterRender(*canvas.Canvas)    { r.after++ }
func (r *hookRecorder) OnAnimationFrame(_ *canvas.Canvas, _ int, t float64) {
	r.frames = append(r.frames, t)
}
func (r *hookRecorder) OnError(_ *canvas.Canvas, _ canvas.Hook, err error) {
	r.errs = append(r.errs, err)
}

// panicker blows up on before-render to prove hook isolation.
type panicker struct{}

func (panicker) Name() string                 { return "panicker" }
func (panicker) Version() string              { return "1.0.0" }
func (panicker) Install(*canvas.Canvas) error { return nil }
func (panicker) BeforeRender(*canvas.Canvas)  { panic("boom") }

func TestRenderFiresHooksOnce(t *testing.T) {
	c := testCanvas(t, 20, 20)
	rec := &hookRecorder{}
	if err := c.Plugins().Use(rec); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	if _, err := New(c).Render(context.Background(), Target{Format: FormatPNG}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if rec.before != 1 || rec.after != 1 {
		t.Errorf("before = %d, after = %d, want 1 and 1", rec.before, rec.after)
	}
}

func TestRenderAnimatedFrames(t *testing.T) {
	c := testCanvas(t, 20, 20)
	c.Anim().SetFrameRate(10)
	rec := &hookRecorder{}
	if err := c.Plugins().Use(rec); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	out, err := New(c).Render(context.Background(), Target{Format: FormatGIF, Frames: 5})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if out.Frames != 5 {
		t.Errorf("Frames = %d, want 5", out.Frames)
	}
	if !bytes.HasPrefix(out.Data, []byte("GIF8")) {
		t.Error("Data missing GIF signature")
	}
	if rec.before != 1 || rec.after != 1 {
		t.Errorf("before = %d, after = %d, want exactly one each per Render call", rec.before, rec.after)
	}
	want := []float64{0, 0.1, 0.2, 0.3, 0.4}
	if len(rec.frames) != len(want) {
		t.Fatalf("frame hook fired %d times, want %d", len(rec.frames), len(want))
	}
	for i, ts := range want {
		if diff := rec.frames[i] - ts; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("frame %d timestamp = %v, want %v", i, rec.frames[i], ts)
		}
	}
}

func TestRenderPanickingHookIsolated(t *testing.T) {
	c := testCanvas(t, 20, 20)
	rec := &hookRecorder{}
	if err := c.Plugins().Use(panicker{}); err != nil {
		t.Fatalf("Use(panicker) error = %v", err)
	}
	if err := c.Plugins().Use(rec); err != nil {
		t.Fatalf("Use(recorder) error = %v", err)
	}

	out, err := New(c).Render(context.Background(), Target{Format: FormatPNG})
	if err != nil {
		t.Fatalf("Render() error = %v, want pass to survive a panicking hook", err)
	}
	if out.Data == nil {
		t.Error("Data = nil, want encoded artifact despite hook panic")
	}

	if rec.before != 1 {
		t.Errorf("recorder before = %d, want 1 (other plugins keep firing)", rec.before)
	}
	if len(rec.errs) != 1 {
		t.Fatalf("recorder received %d errors, want 1", len(rec.errs))
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		fps    int
		want   int
	}{
		{"frames only", Target{Frames: 12}, 30, 12},
		{"duration only", Target{Duration: 2 * time.Second}, 30, 60},
		{"duration wins when smaller", Target{Frames: 100, Duration: time.Second}, 10, 10},
		{"frames win when smaller", Target{Frames: 5, Duration: time.Minute}, 30, 5},
		{"nothing set", Target{}, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameCount(tt.target, tt.fps); got != tt.want {
				t.Errorf("frameCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func newFrame(w, h int) *image.RGBA { return image.NewRGBA(image.Rect(0, 0, w, h)) }

func TestGIFEncoderBufferFlush(t *testing.T) {
	c := testCanvas(t, 8, 8)
	c.Anim().SetBufferSize(2)
	enc := newGIFEncoder(c.Anim())

	enc.add(newFrame(8, 8))
	enc.add(newFrame(8, 8))
	if len(enc.pending) != 0 {
		t.Errorf("pending = %d after hitting the bound, want flushed", len(enc.pending))
	}
	if len(enc.out.Image) != 2 {
		t.Errorf("encoded frames = %d, want 2", len(enc.out.Image))
	}

	enc.add(newFrame(8, 8))
	data, err := enc.encode()
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}
	if len(enc.out.Image) != 3 {
		t.Errorf("encoded frames = %d, want 3", len(enc.out.Image))
	}
	if !bytes.HasPrefix(data, []byte("GIF8")) {
		t.Error("data missing GIF signature")
	}
}

func TestGIFEncoderFrameDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want int // centiseconds per frame
	}{
		{8, 13},  // 12.5 rounds up, not down
		{30, 3},  // 3.33 rounds down
		{50, 2},
		{120, 1}, // never zero, even above 100 fps
	}
	for _, tt := range tests {
		c := testCanvas(t, 8, 8)
		c.Anim().SetFrameRate(tt.fps)
		enc := newGIFEncoder(c.Anim())
		enc.add(newFrame(8, 8))
		enc.flush()

		if got := enc.out.Delay[0]; got != tt.want {
			t.Errorf("fps %d: delay = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestGIFEncoderEmpty(t *testing.T) {
	c := testCanvas(t, 8, 8)
	if _, err := newGIFEncoder(c.Anim()).encode(); !errors.Is(err, ErrNoFrames) {
		t.Errorf("encode() error = %v, want ErrNoFrames", err)
	}
}
