package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/coursegrid/pkg/config"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

// pipelineFlags holds the flags shared by layout and render. Only flags the
// user actually set override the config file.
type pipelineFlags struct {
	prefixes   []string
	comma      string
	grid       grid.Config
	stroke     string
	palette    []string
	crossings  bool
	background string
	fontFamily string
	separators bool
	scale      float64
	refresh    bool
}

func (f *pipelineFlags) registerLoad(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&f.prefixes, "prefix", "p", nil, "requirement code prefixes to keep (repeatable; empty keeps all)")
	fs.StringVar(&f.comma, "comma", pipeline.DefaultComma, "CSV field separator")
}

func (f *pipelineFlags) registerLayout(fs *pflag.FlagSet) {
	d := grid.DefaultConfig()
	fs.IntVar(&f.grid.Columns, "columns", d.Columns, "number of semesters on the grid (0 = unbounded)")
	fs.IntVar(&f.grid.Rows, "rows", d.Rows, "courses per semester (0 = unbounded)")
	fs.Float64Var(&f.grid.BoxWidth, "box-width", d.BoxWidth, "course box width")
	fs.Float64Var(&f.grid.BoxHeight, "box-height", d.BoxHeight, "course box height")
	fs.Float64Var(&f.grid.GapHorizontal, "gap-h", d.GapHorizontal, "gap between semesters")
	fs.Float64Var(&f.grid.GapVertical, "gap-v", d.GapVertical, "gap between rows")
	fs.Float64Var(&f.grid.LineWidth, "line-width", d.LineWidth, "edge line width")
	fs.Float64Var(&f.grid.LanePitch, "lane-pitch", d.LanePitch, "distance between lanes in a corridor")
	fs.Float64Var(&f.grid.AttachSpacing, "attach-spacing", d.AttachSpacing, "spacing of converging edges at a course")
	fs.StringVar(&f.stroke, "stroke", "", "colour of edges without a convergent colour")
	fs.StringSliceVar(&f.palette, "palette", nil, "colours for requirements that feed several courses")
	fs.BoolVar(&f.crossings, "check-crossings", false, "report edges passing through course boxes")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *pipelineFlags) registerRender(fs *pflag.FlagSet) {
	fs.StringVar(&f.background, "background", "", "background colour (\""+pipeline.BackgroundNone+"\" for transparent)")
	fs.StringVar(&f.fontFamily, "font", "", "font family of course labels")
	fs.BoolVar(&f.separators, "separators", false, "draw lines between semesters")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
}

// options merges the config file with the flags that were changed on cmd.
func (f *pipelineFlags) options(cmd *cobra.Command, cfg config.File) pipeline.Options {
	opts := pipeline.FromConfig(cfg)
	changed := cmd.Flags().Changed

	if changed("prefix") {
		opts.Prefixes = f.prefixes
	}
	if changed("comma") {
		opts.Comma = f.comma
	}

	gridFlags := []struct {
		name string
		dst  *float64
		src  float64
	}{
		{"box-width", &opts.Grid.BoxWidth, f.grid.BoxWidth},
		{"box-height", &opts.Grid.BoxHeight, f.grid.BoxHeight},
		{"gap-h", &opts.Grid.GapHorizontal, f.grid.GapHorizontal},
		{"gap-v", &opts.Grid.GapVertical, f.grid.GapVertical},
		{"line-width", &opts.Grid.LineWidth, f.grid.LineWidth},
		{"lane-pitch", &opts.Grid.LanePitch, f.grid.LanePitch},
		{"attach-spacing", &opts.Grid.AttachSpacing, f.grid.AttachSpacing},
	}
	for _, g := range gridFlags {
		if changed(g.name) {
			*g.dst = g.src
		}
	}
	if changed("columns") {
		opts.Grid.Columns = f.grid.Columns
	}
	if changed("rows") {
		opts.Grid.Rows = f.grid.Rows
	}
	if changed("stroke") {
		opts.Stroke = f.stroke
	}
	if changed("palette") {
		opts.Palette = f.palette
	}
	if changed("check-crossings") {
		opts.CheckCrossings = f.crossings
	}
	if changed("refresh") {
		opts.Refresh = f.refresh
	}

	if changed("background") {
		opts.Background = f.background
	}
	if changed("font") {
		opts.FontFamily = f.fontFamily
	}
	if changed("separators") {
		opts.Separators = f.separators
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	return opts
}
