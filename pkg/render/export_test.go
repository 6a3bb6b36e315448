package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	lcerrors "github.com/matzehuels/layercake/pkg/errors"
)

func TestExportReturnsInMemory(t *testing.T) {
	c := testCanvas(t, 20, 20)
	out, err := New(c).Export(context.Background(), FormatPNG, ExportOptions{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(out.Data) == 0 {
		t.Error("Data empty, want encoded artifact without SaveAsFile")
	}
}

func TestExportWritesFile(t *testing.T) {
	c := testCanvas(t, 20, 20)
	dir := t.TempDir()

	out, err := New(c).Export(context.Background(), FormatPNG, ExportOptions{
		Name:       "banner",
		SaveAsFile: true,
		Dir:        dir,
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	path := filepath.Join(dir, "banner.png")
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	if len(written) != len(out.Data) {
		t.Errorf("file has %d bytes, in-memory %d, want identical", len(written), len(out.Data))
	}
}

func TestExportDefaultsToCanvasID(t *testing.T) {
	c := testCanvas(t, 20, 20)
	dir := t.TempDir()

	if _, err := New(c).Export(context.Background(), FormatSVG, ExportOptions{
		SaveAsFile: true,
		Dir:        dir,
	}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, c.ID()+".svg")); err != nil {
		t.Errorf("Stat() error = %v, want file named after canvas id", err)
	}
}

func TestExportRejectsTraversalName(t *testing.T) {
	c := testCanvas(t, 20, 20)
	_, err := New(c).Export(context.Background(), FormatPNG, ExportOptions{
		Name:       "../escape",
		SaveAsFile: true,
		Dir:        t.TempDir(),
	})
	if !lcerrors.Is(err, lcerrors.ErrCodeInvalidPath) {
		t.Errorf("Export() error = %v, want INVALID_PATH", err)
	}
}

func TestExportContextNotWritable(t *testing.T) {
	c := testCanvas(t, 20, 20)
	_, err := New(c).Export(context.Background(), FormatContext, ExportOptions{SaveAsFile: true})
	if err == nil {
		t.Error("Export(ctx, SaveAsFile) error = nil, want error")
	}
}

func TestExportAnimatedGIF(t *testing.T) {
	c := testCanvas(t, 16, 16)
	c.Anim().SetFrameRate(10)

	out, err := New(c).Export(context.Background(), FormatGIF, ExportOptions{Frames: 3})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if out.Frames != 3 {
		t.Errorf("Frames = %d, want animated path with 3 frames", out.Frames)
	}
}
