package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercake/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	formats string  // comma-separated output formats
	output  string  // output directory
	name    string  // output file stem (defaults to the canvas ID)
	frames  int     // frame count for animated formats
	fps     int     // animation frame rate; combined with frames into a duration
	quality int     // JPEG quality (1-100)
	scale   float64 // canvas scale ratio
	noCache bool    // bypass the artifact cache
}

// renderCommand creates the render command for rendering scene documents.
//
// Formats, output directory, frame settings, quality, and scale default to
// the values in the config file when present; pipeline defaults apply
// otherwise.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		formats: c.cfg.Render.Formats,
		output:  c.cfg.Render.Output,
		frames:  c.cfg.Render.Frames,
		fps:     c.cfg.Render.FPS,
		quality: c.cfg.Render.Quality,
		scale:   c.cfg.Render.Scale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a scene document to PNG, JPEG, SVG, or GIF",
		Long: `Render loads a scene document (JSON or YAML), builds the canvas,
and writes one artifact per requested format next to the output directory.

Rendered artifacts are cached under the user cache directory keyed by the
document content, so re-rendering an unchanged scene is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): png (default), jpeg, svg, gif (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory (default: working directory)")
	cmd.Flags().StringVar(&opts.name, "name", "", "output file stem (default: canvas ID)")
	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "frame count for animated formats")
	cmd.Flags().IntVar(&opts.fps, "fps", opts.fps, "animation frame rate")
	cmd.Flags().IntVar(&opts.quality, "quality", opts.quality, "JPEG quality (1-100)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "scale the canvas by the given ratio")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// runRender executes the scene pipeline and reports results.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Input:     input,
		Formats:   parseFormats(opts.formats),
		Frames:    opts.frames,
		Duration:  animDuration(opts.frames, opts.fps),
		Quality:   opts.quality,
		Scale:     opts.scale,
		Name:      opts.name,
		OutDir:    opts.output,
		SaveFiles: true,
		NoCache:   opts.noCache,
		Logger:    logger,
	}

	p := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printSuccess("Rendered %s (%dx%d)", result.Canvas.ID(), result.Canvas.Width(), result.Canvas.Height())
	printStats(result.Stats.LayerCount, result.CacheInfo.AllHit())
	for _, f := range result.Files {
		printFile(f)
	}
	printDetail("load %s · build %s · render %s",
		result.Stats.LoadTime.Round(time.Millisecond),
		result.Stats.BuildTime.Round(time.Millisecond),
		result.Stats.RenderTime.Round(time.Millisecond))
	return nil
}

// animDuration converts a frames/fps pair into a duration in seconds.
// Zero when either is unset, leaving the pipeline to apply its defaults.
func animDuration(frames, fps int) float64 {
	if frames <= 0 || fps <= 0 {
		return 0
	}
	return float64(frames) / float64(fps)
}
