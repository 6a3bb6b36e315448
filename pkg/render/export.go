package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/layercake/pkg/errors"
)

// ExportOptions configure one Export call.
type ExportOptions struct {
	// Name is the output file stem. Empty falls back to the canvas ID.
	Name string
	// SaveAsFile writes the artifact to Dir in addition to returning it.
	SaveAsFile bool
	// Dir is the output directory when SaveAsFile is set. Empty means
	// the working directory.
	Dir string
	// Frames and Duration select the animated path for animated-capable
	// formats; see [Target].
	Frames   int
	Duration time.Duration
}

// Export renders the canvas in the given format and optionally writes
// the artifact to disk as <name>.<ext>. The in-memory encoding is
// always returned; animated-capable formats take the animated path when
// a frame or duration bound is set.
func (m *Manager) Export(ctx context.Context, format Format, opts ExportOptions) (*Output, error) {
	out, err := m.Render(ctx, Target{
		Format:   format,
		Frames:   opts.Frames,
		Duration: opts.Duration,
	})
	if err != nil {
		return nil, err
	}
	if !opts.SaveAsFile {
		return out, nil
	}

	if format == FormatContext {
		return nil, fmt.Errorf("%w: %q cannot be written to a file", ErrUnsupportedFormat, format)
	}

	name := opts.Name
	if name == "" {
		name = m.canvas.ID()
	}
	if err := errors.ValidateFileName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(opts.Dir, name+"."+format.Ext())
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	m.logger.Debug("exported artifact", "path", path, "bytes", len(out.Data))
	return out, nil
}
