package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/render"
	"github.com/matzehuels/coursegrid/pkg/render/nodelink"
	"github.com/matzehuels/coursegrid/pkg/render/sink"
)

// RenderFromLayout generates output artifacts in the requested formats.
// The SVG is drawn once and shared by the svg, png and pdf outputs.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(l, buildSVGOptions(opts)...)
		}
		return svg
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNGContext(ctx, svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDFContext(ctx, svgOnce())
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: true}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, parsed, opts)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	bg := opts.Background
	if bg == BackgroundNone {
		bg = ""
	}
	svgOpts := []sink.SVGOption{
		sink.WithBackground(bg),
		sink.WithFontFamily(opts.FontFamily),
	}
	if opts.Separators {
		svgOpts = append(svgOpts, sink.WithSeparators())
	}
	return svgOpts
}
