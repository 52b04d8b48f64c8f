// Package grid places curriculum courses on a semester-by-slot grid.
//
// Each course occupies one cell: its column is the semester (minus one) and
// its row is the position at which the course was first seen among the
// courses of that semester. Cell geometry is a pure function of [Config] and
// that ordering, so placing the same graph twice yields identical boxes.
//
// # Coordinates
//
// The origin is the top-left corner of the canvas and y grows downwards, as
// in SVG. For a cell at (column, row):
//
//	x0 = Start.X + column*(BoxWidth+GapHorizontal)    x1 = x0 + BoxWidth
//	y0 = Start.Y + row*(BoxHeight+GapVertical)        y1 = y0 + BoxHeight
//
// The back anchor is the left-mid point (x0, (y0+y1)/2) where incoming edges
// attach; the front anchor is the right-mid point where outgoing edges leave.
//
// # Corridors
//
// The gaps between cells are corridors used by the edge router.
// [Placer.VerticalCorridor] returns the x span between a column's right edge
// and the next column's left edge; [Placer.HorizontalCorridor] returns the y
// span between a row's bottom edge and the next row's top edge. Index -1
// names the gap before the first column or row.
package grid
