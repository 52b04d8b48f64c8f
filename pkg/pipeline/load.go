package pipeline

import (
	"context"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/source"
)

// Load builds a finalized curriculum from CSV data. name identifies the
// data in error messages.
func Load(ctx context.Context, name string, data []byte, opts Options) (*curriculum.Graph, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	comma := []rune(opts.Comma)[0]
	ds := source.NewCSVBytes(name, data, source.WithComma(comma))
	return LoadSource(ctx, ds, opts)
}

// LoadSource builds a finalized curriculum from any data source.
func LoadSource(ctx context.Context, ds source.DataSource, opts Options) (*curriculum.Graph, error) {
	opts.SetLoadDefaults()
	g, err := source.Build(ctx, ds, opts.Filter())
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded curriculum",
		"courses", g.NodeCount(),
		"edges", g.EdgeCount(),
		"semesters", g.Semesters())
	return g, nil
}
