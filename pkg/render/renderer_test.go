package render

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/route"
)

type recorder struct{ calls []string }

func (r *recorder) DrawBox(b graph.Box) { r.calls = append(r.calls, "box "+b.Code) }

func (r *recorder) DrawEdge(points []grid.Point, color string, lineWidth float64) {
	r.calls = append(r.calls, fmt.Sprintf("edge %d %s %g", len(points), color, lineWidth))
}

func (r *recorder) DrawArrowhead(a route.Arrowhead, color string) {
	r.calls = append(r.calls, fmt.Sprintf("arrow %g,%g %s", a.Tip.X, a.Tip.Y, color))
}

func TestDraw_Order(t *testing.T) {
	l := graph.Layout{
		Boxes: []graph.Box{{Code: "A"}, {Code: "B"}, {Code: "C"}},
		Edges: []graph.Edge{
			{From: "A", To: "C", Color: "#1f77b4", LineWidth: 1.5,
				Points: make([]grid.Point, 6), Arrowhead: route.Arrowhead{Tip: grid.Point{X: 10, Y: 5}}},
			{From: "B", To: "C", Color: "#000000", LineWidth: 1.5,
				Points: make([]grid.Point, 4), Arrowhead: route.Arrowhead{Tip: grid.Point{X: 10, Y: 15}}},
		},
	}

	var r recorder
	Draw(l, &r)

	want := []string{
		"box A", "box B", "box C",
		"edge 6 #1f77b4 1.5", "arrow 10,5 #1f77b4",
		"edge 4 #000000 1.5", "arrow 10,15 #000000",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("Draw() calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDraw_Empty(t *testing.T) {
	var r recorder
	Draw(graph.Layout{}, &r)
	if len(r.calls) != 0 {
		t.Errorf("Draw() on an empty layout made %d calls", len(r.calls))
	}
}
