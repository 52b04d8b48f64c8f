// Package config loads coursegrid settings from TOML or YAML files.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]. Unknown keys are rejected so that typos do not silently
// fall back to defaults.
//
//	[grid]
//	box_width = 200
//	lane_pitch = 4
//
//	[requirements]
//	prefixes = ["ENC", "MAT"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/route"
	"github.com/matzehuels/coursegrid/pkg/source"
)

// Formats understood by [Parse].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// File is the content of a configuration file.
type File struct {
	Grid         grid.Config  `toml:"grid" yaml:"grid" json:"grid"`
	Requirements Requirements `toml:"requirements" yaml:"requirements" json:"requirements"`
	Render       Render       `toml:"render" yaml:"render" json:"render"`
	Cache        Cache        `toml:"cache" yaml:"cache" json:"cache"`
}

// Requirements controls which requirement codes are kept.
type Requirements struct {
	// Prefixes of codes belonging to the curriculum. Empty keeps all codes.
	Prefixes []string `toml:"prefixes" yaml:"prefixes" json:"prefixes,omitempty"`
}

// Render holds drawing settings.
type Render struct {
	Background     string   `toml:"background" yaml:"background" json:"background"`
	Stroke         string   `toml:"stroke" yaml:"stroke" json:"stroke"`
	Palette        []string `toml:"palette" yaml:"palette" json:"palette"`
	FontFamily     string   `toml:"font_family" yaml:"font_family" json:"font_family"`
	Separators     bool     `toml:"separators" yaml:"separators" json:"separators"` // lines between semesters
	CheckCrossings bool     `toml:"check_crossings" yaml:"check_crossings" json:"check_crossings"`
}

// Cache selects the cache backend.
type Cache struct {
	// URL is "file://<dir>", "redis://...", "mongodb://..." or "none".
	// Empty uses the default file cache.
	URL string `toml:"url" yaml:"url" json:"url,omitempty"`
	// TTL is a time.ParseDuration string.
	TTL string `toml:"ttl" yaml:"ttl" json:"ttl,omitempty"`
}

// Default values for [Render] and [Cache].
const (
	DefaultBackground = "#ffffff"
	DefaultFontFamily = "Times, serif"
	DefaultCacheTTL   = 24 * time.Hour
)

// Default returns the built-in configuration.
func Default() File {
	return File{
		Grid: grid.DefaultConfig(),
		Render: Render{
			Background: DefaultBackground,
			Stroke:     route.DefaultStroke,
			Palette:    slices.Clone(route.DefaultPalette),
			FontFamily: DefaultFontFamily,
		},
	}
}

// Load reads the file at path. The format follows the extension: .toml,
// .yaml or .yml.
func Load(path string) (File, error) {
	format, err := formatOf(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return File{}, err
	}
	f, err := Parse(data, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", apperrors.New(apperrors.ErrCodeUnsupported, "unsupported config format: %q (use .toml, .yaml or .yml)", filepath.Ext(path))
}

// Parse decodes data over [Default] and validates the result.
func Parse(data []byte, format string) (File, error) {
	f := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return File{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return File{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse yaml")
		}
	default:
		return File{}, apperrors.New(apperrors.ErrCodeUnsupported, "unsupported config format: %q", format)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks the grid settings and the cache TTL.
func (f File) Validate() error {
	if err := f.Grid.Validate(); err != nil {
		return err
	}
	if _, err := f.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// CacheTTL returns the parsed cache TTL, or [DefaultCacheTTL] when unset.
func (f File) CacheTTL() (time.Duration, error) {
	if f.Cache.TTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(f.Cache.TTL)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "cache ttl")
	}
	if d < 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return d, nil
}

// Filter returns the requirement filter for the configured prefixes.
func (f File) Filter() source.RequirementFilter {
	return source.PrefixFilter(f.Requirements.Prefixes...)
}
