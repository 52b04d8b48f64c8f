// Package sink writes layouts as SVG documents.
//
// [RenderSVG] draws a [graph.Layout] through [render.Draw]: a background,
// optional semester separators, one box per course and the routed edges on
// top. Boxes follow the classic chart look: a light grey fill with a thin
// dark border, the course code at the top, the name fitted to the box width
// in the middle and the duration at the bottom.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithBackground("#e6ffff"),
//	    sink.WithSeparators(),
//	)
//
// [graph.Layout]: github.com/matzehuels/coursegrid/pkg/graph.Layout
// [render.Draw]: github.com/matzehuels/coursegrid/pkg/render.Draw
package sink
