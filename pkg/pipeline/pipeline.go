// Package pipeline provides the load → layout → render pipeline of
// coursegrid.
//
// The CLI and the HTTP server both run curricula through a [Runner], so
// they share defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read CSV rows and build a finalized curriculum graph
//  2. Layout: Place courses on the semester grid and route every edge
//  3. Render: Generate output in the requested formats (SVG, JSON, DOT, PNG, PDF)
//
// Each stage caches its output under a key derived from its input hash and
// the options that affect it.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, "curriculum.csv", data, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coursegrid/pkg/cache"
	"github.com/matzehuels/coursegrid/pkg/config"
	"github.com/matzehuels/coursegrid/pkg/curriculum"
	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/route"
	"github.com/matzehuels/coursegrid/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultComma is the CSV field separator.
	DefaultComma = ","

	// BackgroundNone leaves the canvas transparent.
	BackgroundNone = "none"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Prefixes []string `json:"prefixes,omitempty"` // requirement code prefixes; empty keeps all
	Comma    string   `json:"comma,omitempty"`

	// Layout options
	Grid           grid.Config `json:"grid"`
	Palette        []string    `json:"palette,omitempty"`
	Stroke         string      `json:"stroke,omitempty"`
	CheckCrossings bool        `json:"check_crossings,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"` // BackgroundNone for transparent
	FontFamily string   `json:"font_family,omitempty"`
	Separators bool     `json:"separators,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// FromConfig returns options carrying the settings of a config file.
func FromConfig(f config.File) Options {
	return Options{
		Prefixes:       slices.Clone(f.Requirements.Prefixes),
		Grid:           f.Grid,
		Palette:        slices.Clone(f.Render.Palette),
		Stroke:         f.Render.Stroke,
		CheckCrossings: f.Render.CheckCrossings,
		Background:     f.Render.Background,
		FontFamily:     f.Render.FontFamily,
		Separators:     f.Render.Separators,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the finalized curriculum.
	Graph *curriculum.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Layout is the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Courses    int
	Edges      int
	Crossings  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLoadDefaults sets default values for loading.
func (o *Options) SetLoadDefaults() {
	if o.Comma == "" {
		o.Comma = DefaultComma
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLoad validates and sets defaults for loading.
func (o *Options) ValidateForLoad() error {
	o.SetLoadDefaults()
	if len([]rune(o.Comma)) != 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "comma must be a single character, got %q", o.Comma)
	}
	return nil
}

// Filter returns the requirement filter for the configured prefixes.
func (o *Options) Filter() source.RequirementFilter {
	return source.PrefixFilter(o.Prefixes...)
}

// SetLayoutDefaults sets default values for layout computation. A zero
// grid is replaced by [grid.DefaultConfig].
func (o *Options) SetLayoutDefaults() {
	if o.Grid == (grid.Config{}) {
		o.Grid = grid.DefaultConfig()
	}
	if o.Palette == nil {
		o.Palette = slices.Clone(route.DefaultPalette)
	}
	if o.Stroke == "" {
		o.Stroke = route.DefaultStroke
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Grid.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Background == "" {
		o.Background = config.DefaultBackground
	}
	if o.FontFamily == "" {
		o.FontFamily = config.DefaultFontFamily
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks every stage and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// GraphKeyOpts returns cache key options for loading.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{Prefixes: o.Prefixes, Comma: o.Comma}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Grid:      o.Grid,
		Palette:   o.Palette,
		Stroke:    o.Stroke,
		Crossings: o.CheckCrossings,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		FontFamily: o.FontFamily,
		Separators: o.Separators,
		Scale:      o.Scale,
	}
}
