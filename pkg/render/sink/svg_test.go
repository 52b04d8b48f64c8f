package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/layout"
)

func sampleLayout(t *testing.T) graph.Layout {
	t.Helper()
	g := curriculum.New()
	for _, c := range []struct {
		code, name string
		semester   int
	}{
		{"ENC-01", "Introdução à Engenharia", 1},
		{"MAT-01", "Calculus I", 1},
		{"MAT-02", "Calculus & Series", 2},
		{"ENC-04", "Systems", 3},
	} {
		if err := g.AddNode(c.code, c.name, 68, c.semester); err != nil {
			t.Fatal(err)
		}
	}
	for _, r := range [][2]string{{"MAT-02", "MAT-01"}, {"ENC-04", "ENC-01"}, {"ENC-04", "MAT-02"}} {
		if err := g.AddRequirement(r[0], r[1]); err != nil {
			t.Fatal(err)
		}
	}
	l, err := layout.Build(g, grid.DefaultConfig())
	if err != nil {
		t.Fatalf("layout.Build() error: %v", err)
	}
	return graph.FromLayout(l)
}

func TestRenderSVG_Structure(t *testing.T) {
	l := sampleLayout(t)
	svg := string(RenderSVG(l))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("RenderSVG() is not a complete document:\n%s", svg)
	}
	if got := strings.Count(svg, `class="course"`); got != len(l.Boxes) {
		t.Errorf("course groups = %d, want %d", got, len(l.Boxes))
	}
	if got := strings.Count(svg, `class="edge"`); got != len(l.Edges) {
		t.Errorf("edges = %d, want %d", got, len(l.Edges))
	}
	if got := strings.Count(svg, `class="arrow"`); got != len(l.Edges) {
		t.Errorf("arrowheads = %d, want %d", got, len(l.Edges))
	}
	if strings.Contains(svg, `class="separator"`) {
		t.Error("separators drawn without WithSeparators")
	}
	if !strings.Contains(svg, `fill="`+defaultBgColor+`"`) {
		t.Error("default background missing")
	}
}

func TestRenderSVG_BoxesBeforeEdges(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(t)))

	lastBox := strings.LastIndex(svg, `class="course"`)
	firstEdge := strings.Index(svg, `class="edge"`)
	if lastBox < 0 || firstEdge < 0 || lastBox > firstEdge {
		t.Errorf("boxes must precede edges (last box at %d, first edge at %d)", lastBox, firstEdge)
	}
}

func TestRenderSVG_Labels(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(t)))

	for _, want := range []string{
		">ENC-01</text>",
		">Introdução à Engenharia</text>",
		">Calculus &amp; Series</text>",
		">68</text>",
		`fill="` + BoxFill + `"`,
		`fill="` + BoxBorder + `"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
}

func TestRenderSVG_Options(t *testing.T) {
	l := sampleLayout(t)
	svg := string(RenderSVG(l,
		WithBackground("#e6ffff"),
		WithFontFamily("Helvetica"),
		WithSeparators(),
	))

	if !strings.Contains(svg, `fill="#e6ffff"`) {
		t.Error("background option ignored")
	}
	if !strings.Contains(svg, `font-family="Helvetica"`) {
		t.Error("font family option ignored")
	}
	if got, want := strings.Count(svg, `class="separator"`), l.Semesters()-1; got != want {
		t.Errorf("separators = %d, want %d", got, want)
	}

	bare := string(RenderSVG(l, WithBackground("")))
	if strings.Contains(bare, `<rect x="0" y="0"`) {
		t.Error("empty background should not draw a canvas rect")
	}
}

func TestRenderSVG_EdgeColors(t *testing.T) {
	l := sampleLayout(t)
	svg := string(RenderSVG(l))
	for _, e := range l.Edges {
		if !strings.Contains(svg, `stroke="`+e.Color+`"`) {
			t.Errorf("edge %s colour %s missing", e.ID(), e.Color)
		}
	}
}

func TestPointList(t *testing.T) {
	got := pointList([]grid.Point{{X: 1, Y: 2.5}, {X: -3, Y: 0}})
	if got != "1,2.5 -3,0" {
		t.Errorf("pointList() = %q", got)
	}
}
