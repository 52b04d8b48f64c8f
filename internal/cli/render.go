package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
		flags   pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [curriculum.csv | layout.json]",
		Short: "Render a curriculum to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a curriculum to SVG, PNG, PDF, JSON or DOT.

The input is either a curriculum CSV, which runs the full pipeline, or a
layout.json produced by 'layout', which is drawn without a new layout
pass. PNG and PDF output need rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg)
			opts.Formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			return c.runRender(cmd.Context(), runner, args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerLoad(cmd.Flags())
	flags.registerLayout(cmd.Flags())
	flags.registerRender(cmd.Flags())

	return cmd
}

// isLayoutFile reports whether input is a serialized layout rather than CSV.
func isLayoutFile(input string) bool {
	return strings.EqualFold(filepath.Ext(input), ".json")
}

// runRender renders input in every requested format and writes the files.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	var (
		l         graph.Layout
		artifacts map[string][]byte
		cached    bool
		courses   int
		edges     int
	)
	if isLayoutFile(input) {
		var err error
		l, err = graph.ReadLayoutFile(input)
		if err != nil {
			spinner.StopWithError("Reading layout failed")
			return err
		}
		artifacts, cached, err = runner.RenderWithCacheInfo(ctx, l, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		courses, edges = len(l.Boxes), len(l.Edges)
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			spinner.StopWithError("Reading curriculum failed")
			return fmt.Errorf("read %s: %w", input, err)
		}
		res, err := runner.Execute(ctx, input, data, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		l, artifacts = res.Layout, res.Artifacts
		cached = res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit
		courses, edges = res.Stats.Courses, res.Stats.Edges
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}
	prog.done("Rendered " + strings.Join(opts.Formats, ", "))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(courses, edges, cached)
	printCrossings(l)
	return nil
}

// writeArtifacts writes one file per format. A single format goes to output
// when given; otherwise output (or the input name) is used as the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := outputBase(input)
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if format == pipeline.FormatJSON && path == input {
			path = base + ".out.json"
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
