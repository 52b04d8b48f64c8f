package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/render"
	"github.com/matzehuels/coursegrid/pkg/route"
)

// Box colours and text settings.
const (
	BoxFill         = "#e6e6e6"
	BoxBorder       = "#1a1a1a"
	TextColor       = "#000000"
	SeparatorColor  = "#ff0000"
	LabelFontSize   = 14.0
	borderWidth     = 1.0
	namePadding     = 4.0
	codeBaseline    = 15.0 // from the top of the box
	nameBaseline    = 0.5  // fraction of the box height
	durationOffset  = 15.0 // from the bottom of the box
	defaultFontFace = "Times, serif"
	defaultBgColor  = "#ffffff"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

// WithBackground sets the canvas colour. An empty colour leaves the
// background transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithFontFamily sets the CSS font-family of every label.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) {
		if family != "" {
			r.fontFamily = family
		}
	}
}

// WithSeparators draws a vertical line in the middle of every corridor
// between two semester columns.
func WithSeparators() SVGOption { return func(r *svgRenderer) { r.separators = true } }

// WithMetrics replaces the text measure used to fit course names.
func WithMetrics(m render.TextMetrics) SVGOption {
	return func(r *svgRenderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

type svgRenderer struct {
	buf        bytes.Buffer
	background string
	fontFamily string
	separators bool
	metrics    render.TextMetrics
}

func newSVGRenderer(opts ...SVGOption) *svgRenderer {
	r := &svgRenderer{
		background: defaultBgColor,
		fontFamily: defaultFontFace,
		metrics:    render.ApproxMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderSVG returns l as a standalone SVG document.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	fmt.Fprintf(&r.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(l.Width), num(l.Height), l.Width, l.Height)
	if r.background != "" {
		fmt.Fprintf(&r.buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
			num(l.Width), num(l.Height), escapeXML(r.background))
	}
	if r.separators {
		r.renderSeparators(l)
	}
	fmt.Fprintf(&r.buf, `  <g font-family="%s" fill="%s" text-anchor="middle">`+"\n", escapeXML(r.fontFamily), TextColor)

	render.Draw(l, r)

	r.buf.WriteString("  </g>\n</svg>\n")
	return r.buf.Bytes()
}

func (r *svgRenderer) renderSeparators(l graph.Layout) {
	cfg := l.Grid
	step := cfg.BoxWidth + cfg.GapHorizontal
	for col := 0; col+1 < l.Semesters(); col++ {
		x := cfg.Start.X + float64(col)*step + cfg.BoxWidth + cfg.GapHorizontal/2
		fmt.Fprintf(&r.buf, `  <line class="separator" x1="%s" y1="0" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(x), num(x), num(l.Height), SeparatorColor)
	}
}

// DrawBox draws the border, the fill and the three labels of a course.
func (r *svgRenderer) DrawBox(b graph.Box) {
	box := b.Rect
	fmt.Fprintf(&r.buf, `    <g class="course" id="course-%s">`+"\n", escapeXML(b.Code))
	fmt.Fprintf(&r.buf, `      <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(box.X0-borderWidth), num(box.Y0-borderWidth),
		num(box.Width()+2*borderWidth), num(box.Height()+2*borderWidth), BoxBorder)
	fmt.Fprintf(&r.buf, `      <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(box.X0), num(box.Y0), num(box.Width()), num(box.Height()), BoxFill)

	cx := (box.X0 + box.X1) / 2
	r.text(cx, box.Y0+codeBaseline, LabelFontSize, b.Code)
	if b.Name != "" {
		size := render.FitFontSize(b.Name, box.Width()-2*namePadding, r.metrics)
		r.text(cx, box.Y0+box.Height()*nameBaseline, size, b.Name)
	}
	if b.Duration != 0 {
		r.text(cx, box.Y1-durationOffset, LabelFontSize, strconv.FormatFloat(b.Duration, 'f', -1, 64))
	}
	r.buf.WriteString("    </g>\n")
}

func (r *svgRenderer) text(x, y, size float64, s string) {
	fmt.Fprintf(&r.buf, `      <text x="%s" y="%s" font-size="%s">%s</text>`+"\n",
		num(x), num(y), num(size), escapeXML(s))
}

// DrawEdge draws a polyline.
func (r *svgRenderer) DrawEdge(points []grid.Point, color string, lineWidth float64) {
	fmt.Fprintf(&r.buf, `    <polyline class="edge" points="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		pointList(points), escapeXML(color), num(lineWidth))
}

// DrawArrowhead draws the two strokes from the tip back to the wings.
func (r *svgRenderer) DrawArrowhead(a route.Arrowhead, color string) {
	pts := []grid.Point{a.Wings[0], a.Tip, a.Wings[1]}
	fmt.Fprintf(&r.buf, `    <polyline class="arrow" points="%s" fill="none" stroke="%s"/>`+"\n",
		pointList(pts), escapeXML(color))
}

func pointList(points []grid.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
