package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/coursegrid/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the course name and duration to node labels.
	// When false, only the code is shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT. Courses of one semester share a
// rank; edges appear in layout order with their colours.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=\"#e6e6e6\", color=\"#1a1a1a\", fontname=\"Times\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")

	var semesters [][]graph.Box
	for _, b := range l.Boxes {
		for len(semesters) <= b.Column {
			semesters = append(semesters, nil)
		}
		semesters[b.Column] = append(semesters[b.Column], b)
	}
	for col, boxes := range semesters {
		if len(boxes) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph semester_%d {\n    rank=same;\n", col+1)
		for _, b := range boxes {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", b.Code, fmtLabel(b, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e.From, e.To, e.Color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b graph.Box, detailed bool) string {
	if !detailed {
		return b.Code
	}
	parts := []string{b.Code}
	if b.Name != "" {
		parts = append(parts, b.Name)
	}
	if b.Duration != 0 {
		parts = append(parts, strconv.FormatFloat(b.Duration, 'f', -1, 64))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
