// Package pipeline provides the load → build → render pipeline.
//
// This package implements the complete scene pipeline that can be used by
// CLI, API, and worker components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a scene document from a file or request body
//  2. Build: Construct the canvas and layer tree from the document
//  3. Render: Encode output in the requested formats (PNG, SVG, GIF, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "scene.json",
//	    Formats: []string{"png", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layercake/pkg/cache"
	"github.com/matzehuels/layercake/pkg/canvas"
	"github.com/matzehuels/layercake/pkg/render"
	"github.com/matzehuels/layercake/pkg/sceneio"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is used when no output formats are requested.
	DefaultFormat = "png"

	// DefaultQuality is the JPEG quality used when none is requested.
	DefaultQuality = 90
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the scene pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Input or Document must be set.
	Input    string            `json:"input,omitempty"`
	Document *sceneio.Document `json:"document,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Frames   int      `json:"frames,omitempty"`
	Duration float64  `json:"duration,omitempty"`
	Quality  int      `json:"quality,omitempty"`

	// Scale resizes the canvas by the given ratio after build. Zero or
	// one leaves the canvas at its declared size.
	Scale float64 `json:"scale,omitempty"`

	// Export options
	Name      string `json:"name,omitempty"`
	OutDir    string `json:"out_dir,omitempty"`
	SaveFiles bool   `json:"save_files,omitempty"`

	// NoCache bypasses artifact caching for this run.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Plugins []canvas.Plugin `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	// parsed render targets, filled during validation.
	targets []render.Target
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canvas is the built scene.
	Canvas *canvas.Canvas

	// Document is the parsed scene document.
	Document *sceneio.Document

	// DocHash is the content hash of the canonical document form.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Files lists written file paths when SaveFiles is set.
	Files []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayerCount int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per rendered format.
type CacheInfo struct {
	// Hits maps format name to whether the artifact came from cache.
	Hits map[string]bool
}

// AllHit reports whether every requested artifact came from the cache.
func (c CacheInfo) AllHit() bool {
	if len(c.Hits) == 0 {
		return false
	}
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Document == nil {
		return fmt.Errorf("input file or document is required")
	}
	if o.Input != "" && o.Document != nil {
		return fmt.Errorf("input file and document are mutually exclusive")
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}

	o.targets = o.targets[:0]
	for _, name := range o.Formats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		if format == render.FormatContext {
			return fmt.Errorf("format %q is not available through the pipeline", name)
		}
		o.targets = append(o.targets, render.Target{
			Format:   format,
			Frames:   o.Frames,
			Duration: time.Duration(o.Duration * float64(time.Second)),
			Quality:  o.Quality,
		})
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Targets returns the parsed render targets.
// ValidateAndSetDefaults must have been called.
func (o *Options) Targets() []render.Target {
	return o.targets
}

// ArtifactKeyOpts returns cache key options for one render target.
func (o *Options) ArtifactKeyOpts(t render.Target, width, height int) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   string(t.Format),
		Width:    width,
		Height:   height,
		Frames:   t.Frames,
		Duration: t.Duration.Seconds(),
		Quality:  t.Quality,
	}
}
