package pipeline

import (
	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/layout"
)

// GenerateLayout runs one layout pass over g and returns its serialized
// form.
func GenerateLayout(g *curriculum.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	layoutOpts := []layout.Option{
		layout.WithLogger(opts.Logger),
		layout.WithPalette(opts.Palette),
		layout.WithStroke(opts.Stroke),
	}
	if opts.CheckCrossings {
		layoutOpts = append(layoutOpts, layout.WithCrossingCheck())
	}

	l, err := layout.Build(g, opts.Grid, layoutOpts...)
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.FromLayout(l), nil
}
