package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coursegrid/pkg/route"
)

// Option configures [Build].
type Option func(*options)

type options struct {
	logger    *log.Logger
	palette   []string
	fallback  string
	crossings bool
}

func defaultOptions() options {
	return options{
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		palette:  route.DefaultPalette,
		fallback: route.DefaultStroke,
	}
}

// WithLogger sets the logger for debug output of the pass.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPalette replaces the colours of converging edges.
func WithPalette(palette []string) Option {
	return func(o *options) { o.palette = palette }
}

// WithStroke sets the colour of non-converging edges.
func WithStroke(color string) Option {
	return func(o *options) { o.fallback = color }
}

// WithCrossingCheck enables the box crossing diagnostic.
func WithCrossingCheck() Option {
	return func(o *options) { o.crossings = true }
}
