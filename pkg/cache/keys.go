package cache

import "github.com/matzehuels/coursegrid/pkg/grid"

// Key prefixes, one per pipeline stage.
const (
	prefixGraph    = "graph"
	prefixLayout   = "layout"
	prefixArtifact = "artifact"
)

// GraphKeyOpts are the settings that change how raw rows become a graph.
type GraphKeyOpts struct {
	Prefixes []string
	Comma    string
}

// LayoutKeyOpts are the settings that change a layout.
type LayoutKeyOpts struct {
	Grid      grid.Config
	Palette   []string
	Stroke    string
	Crossings bool
}

// ArtifactKeyOpts are the settings that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	Background string
	FontFamily string
	Separators bool
	Scale      float64 // png only
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	GraphKey(sourceHash string, opts GraphKeyOpts) string
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage input together with its options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns the key of the graph built from source data with the
// given hash.
func (DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey(prefixGraph, sourceHash, opts)
}

// LayoutKey returns the key of a layout of the graph with the given hash.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(prefixLayout, graphHash, opts)
}

// ArtifactKey returns the key of an artifact rendered from a layout.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, layoutHash, opts)
}
