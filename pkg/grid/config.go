package grid

// Default values for [Config].
const (
	DefaultColumns       = 8
	DefaultRows          = 0
	DefaultBoxWidth      = 180.0
	DefaultBoxHeight     = 80.0
	DefaultGapHorizontal = 60.0
	DefaultGapVertical   = 30.0
	DefaultStartX        = 20.0
	DefaultStartY        = 20.0
	DefaultLineWidth     = 1.5
	DefaultArrowWidth    = 6.0
	DefaultArrowSize     = 8.0
	DefaultAttachSpacing = 10.0
	DefaultLanePitch     = 6.0
)

// Config holds every geometric setting of placement and routing. None of
// the fields change behaviour, only coordinates.
type Config struct {
	// Columns and Rows bound the grid. Zero means unbounded.
	Columns int `json:"columns" toml:"columns" yaml:"columns"`
	Rows    int `json:"rows" toml:"rows" yaml:"rows"`

	BoxWidth      float64 `json:"box_width" toml:"box_width" yaml:"box_width"`
	BoxHeight     float64 `json:"box_height" toml:"box_height" yaml:"box_height"`
	GapHorizontal float64 `json:"gap_horizontal" toml:"gap_horizontal" yaml:"gap_horizontal"` // between columns
	GapVertical   float64 `json:"gap_vertical" toml:"gap_vertical" yaml:"gap_vertical"`       // between rows
	Start         Point   `json:"start" toml:"start" yaml:"start"`                            // top-left corner of cell (0,0)

	LineWidth     float64 `json:"line_width" toml:"line_width" yaml:"line_width"`
	ArrowWidth    float64 `json:"arrow_width" toml:"arrow_width" yaml:"arrow_width"`
	ArrowSize     float64 `json:"arrow_size" toml:"arrow_size" yaml:"arrow_size"`
	AttachSpacing float64 `json:"attach_spacing" toml:"attach_spacing" yaml:"attach_spacing"` // fan-out step at converging targets
	LanePitch     float64 `json:"lane_pitch" toml:"lane_pitch" yaml:"lane_pitch"`             // lane step inside a corridor
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Columns:       DefaultColumns,
		Rows:          DefaultRows,
		BoxWidth:      DefaultBoxWidth,
		BoxHeight:     DefaultBoxHeight,
		GapHorizontal: DefaultGapHorizontal,
		GapVertical:   DefaultGapVertical,
		Start:         Point{X: DefaultStartX, Y: DefaultStartY},
		LineWidth:     DefaultLineWidth,
		ArrowWidth:    DefaultArrowWidth,
		ArrowSize:     DefaultArrowSize,
		AttachSpacing: DefaultAttachSpacing,
		LanePitch:     DefaultLanePitch,
	}
}

// Validate reports the first setting that cannot produce a usable grid as
// *InvalidConfigurationError.
func (c Config) Validate() error {
	if c.Columns < 0 {
		return &InvalidConfigurationError{Field: "columns", Reason: "must not be negative"}
	}
	if c.Rows < 0 {
		return &InvalidConfigurationError{Field: "rows", Reason: "must not be negative"}
	}
	positive := []struct {
		field string
		value float64
	}{
		{"box_width", c.BoxWidth},
		{"box_height", c.BoxHeight},
		{"gap_horizontal", c.GapHorizontal},
		{"gap_vertical", c.GapVertical},
		{"line_width", c.LineWidth},
		{"arrow_width", c.ArrowWidth},
		{"arrow_size", c.ArrowSize},
		{"lane_pitch", c.LanePitch},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return &InvalidConfigurationError{Field: p.field, Reason: "must be positive"}
		}
	}
	if !(c.AttachSpacing >= 0) {
		return &InvalidConfigurationError{Field: "attach_spacing", Reason: "must not be negative"}
	}
	return nil
}
