package grid

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x" bson:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" bson:"y" toml:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle. (X0, Y0) is the top-left corner and
// (X1, Y1) the bottom-right one.
type Rect struct {
	X0 float64 `json:"x0" bson:"x0"`
	Y0 float64 `json:"y0" bson:"y0"`
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2} }

// Span is a closed interval along one axis.
type Span struct {
	Start float64
	End   float64
}

// Mid returns the midpoint of the span.
func (s Span) Mid() float64 { return (s.Start + s.End) / 2 }

// Width returns the length of the span.
func (s Span) Width() float64 { return s.End - s.Start }

// Contains reports whether v lies within the span, bounds included.
func (s Span) Contains(v float64) bool { return v >= s.Start && v <= s.End }

// Geometry is the placement of one course.
type Geometry struct {
	Column int   // semester - 1
	Row    int   // slot within the column, 0-based
	Box    Rect  // cell rectangle
	Back   Point // left-mid anchor, incoming edges
	Front  Point // right-mid anchor, outgoing edges
}
