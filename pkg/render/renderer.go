package render

import (
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/route"
)

// Renderer receives drawing primitives from [Draw].
type Renderer interface {
	DrawBox(b graph.Box)
	DrawEdge(points []grid.Point, color string, lineWidth float64)
	DrawArrowhead(a route.Arrowhead, color string)
}

// Draw emits every box of l, then every edge with its arrowhead in edge
// order.
func Draw(l graph.Layout, r Renderer) {
	for _, b := range l.Boxes {
		r.DrawBox(b)
	}
	for _, e := range l.Edges {
		r.DrawEdge(e.Points, e.Color, e.LineWidth)
		r.DrawArrowhead(e.Arrowhead, e.Color)
	}
}
