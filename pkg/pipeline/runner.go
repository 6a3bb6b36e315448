package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/layercake/pkg/cache"
	"github.com/matzehuels/layercake/pkg/canvas"
	"github.com/matzehuels/layercake/pkg/errors"
	"github.com/matzehuels/layercake/pkg/httputil"
	"github.com/matzehuels/layercake/pkg/observability"
	"github.com/matzehuels/layercake/pkg/render"
	"github.com/matzehuels/layercake/pkg/scene"
	"github.com/matzehuels/layercake/pkg/sceneio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{Hits: make(map[string]bool)},
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)

	// Canonical form hashes identically regardless of input format.
	canonical, err := sceneio.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}
	result.DocHash = cache.Hash(canonical)

	// Stage 2: Build
	buildStart := time.Now()
	c, err := r.Build(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Canvas = c
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.LayerCount = c.Layers().Len()

	logger.Info("built scene",
		"layers", result.Stats.LayerCount,
		"width", c.Width(),
		"height", c.Height(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	formats := make([]string, len(opts.Targets()))
	for i, t := range opts.Targets() {
		formats[i] = string(t.Format)
	}
	observability.Render().OnRenderStart(ctx, c.ID(), formats)

	err = r.renderTargets(ctx, c, result, opts, logger)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, c.ID(), formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	logger.Info("rendered outputs",
		"formats", formats,
		"cached", result.CacheInfo.AllHit(),
		"duration", result.Stats.RenderTime)

	if opts.SaveFiles {
		if err := r.saveFiles(result, opts); err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
	}

	return result, nil
}

// Load parses the scene document from Options.Input, or returns the
// pre-parsed document when one was supplied directly.
func (r *Runner) Load(ctx context.Context, opts Options) (*sceneio.Document, error) {
	if opts.Document != nil {
		return opts.Document, nil
	}
	return sceneio.ReadFile(opts.Input)
}

// Build constructs a canvas from the document, downloads remote image
// sources, and applies runtime options (plugins, scaling).
func (r *Runner) Build(ctx context.Context, doc *sceneio.Document, opts Options) (*canvas.Canvas, error) {
	var copts []canvas.Option
	if opts.Logger != nil {
		copts = append(copts, canvas.WithLogger(opts.Logger))
	}
	c, err := sceneio.Build(doc, copts...)
	if err != nil {
		return nil, err
	}
	if err := r.fetchRemoteImages(ctx, c); err != nil {
		return nil, err
	}
	for _, plugin := range opts.Plugins {
		if err := c.Plugins().Use(plugin); err != nil {
			return nil, err
		}
	}
	if opts.Scale > 0 && opts.Scale != 1 {
		if err := c.Resize(opts.Scale); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// fetchRemoteImages downloads and decodes http(s) image sources so the
// render pass only touches local state. Downloads share the runner's
// cache, keyed by URL.
func (r *Runner) fetchRemoteImages(ctx context.Context, c *canvas.Canvas) error {
	fetcher := httputil.NewFetcher(r.Cache)
	for l := range c.Layers().Flatten() {
		img, ok := l.(*scene.Image)
		if !ok || img.Loaded() != nil || !httputil.IsRemote(img.Source()) {
			continue
		}
		data, err := fetcher.Fetch(ctx, img.Source())
		if err != nil {
			return fmt.Errorf("layer %q: fetch %s: %w", img.ID(), img.Source(), err)
		}
		decoded, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("layer %q: decode %s: %w", img.ID(), img.Source(), err)
		}
		img.SetImage(decoded)
	}
	return nil
}

// renderTargets renders every requested format, consulting the artifact
// cache per format. Plugin-driven scenes are not cacheable: plugins can
// change layer state between runs, so caching is skipped when any plugin
// is attached.
func (r *Runner) renderTargets(ctx context.Context, c *canvas.Canvas, result *Result, opts Options, logger *log.Logger) error {
	cacheable := !opts.NoCache && len(opts.Plugins) == 0
	manager := render.New(c, render.WithLogger(logger))

	for _, target := range opts.Targets() {
		format := string(target.Format)
		key := r.Keyer.ArtifactKey(result.DocHash, opts.ArtifactKeyOpts(target, c.Width(), c.Height()))

		if cacheable {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Artifacts[format] = data
				result.CacheInfo.Hits[format] = true
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		out, err := manager.Render(ctx, target)
		if err != nil {
			return err
		}
		result.Artifacts[format] = out.Data
		result.CacheInfo.Hits[format] = false

		if cacheable {
			if err := r.Cache.Set(ctx, key, out.Data, cache.ArtifactTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(out.Data))
			}
		}
	}
	return nil
}

// saveFiles writes each artifact to disk as <name>.<ext>.
func (r *Runner) saveFiles(result *Result, opts Options) error {
	name := opts.Name
	if name == "" {
		name = result.Canvas.ID()
	}
	if err := errors.ValidateFileName(name); err != nil {
		return err
	}

	for _, target := range opts.Targets() {
		data, ok := result.Artifacts[string(target.Format)]
		if !ok {
			continue
		}
		path := filepath.Join(opts.OutDir, name+"."+target.Format.Ext())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
