package route

// DefaultStroke is the colour of edges whose source never feeds a course
// with more than one requirement.
const DefaultStroke = "#000000"

// DefaultPalette is the fixed colour order for converging edges.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// ColorAssigner hands out stroke colours per source course. A source that
// feeds at least one course with several requirements gets a single palette
// colour for every one of its edges, convergent or not; other sources get the
// fallback. Palette colours go out in the order of each source's first
// convergent Assign call, so the result depends only on that order.
//
// Record every edge with Assign before reading colours with Color; Assign
// alone returns the fallback for a source whose convergent edge is still to
// come.
type ColorAssigner struct {
	palette  []string
	fallback string
	assigned map[string]string
}

// NewColorAssigner returns an assigner cycling through palette. An empty
// palette gives every edge the fallback colour.
func NewColorAssigner(palette []string, fallback string) *ColorAssigner {
	return &ColorAssigner{
		palette:  append([]string(nil), palette...),
		fallback: fallback,
		assigned: make(map[string]string),
	}
}

// Assign returns the colour for an edge leaving source towards a course with
// targetRequirements requirements.
func (c *ColorAssigner) Assign(source string, targetRequirements int) string {
	if color, ok := c.assigned[source]; ok {
		return color
	}
	if targetRequirements <= 1 || len(c.palette) == 0 {
		return c.fallback
	}
	color := c.palette[len(c.assigned)%len(c.palette)]
	c.assigned[source] = color
	return color
}

// Color returns the stroke of every edge leaving source.
func (c *ColorAssigner) Color(source string) string {
	if color, ok := c.assigned[source]; ok {
		return color
	}
	return c.fallback
}

// Assigned returns the colour of source, if it has one.
func (c *ColorAssigner) Assigned(source string) (string, bool) {
	color, ok := c.assigned[source]
	return color, ok
}
