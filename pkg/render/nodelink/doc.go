// Package nodelink renders curricula as Graphviz node-link diagrams.
//
// # Overview
//
// Instead of the fixed semester grid, Graphviz places the courses itself.
// Each semester becomes one rank (rankdir=LR), so requirements still point
// left to right, and every edge keeps the colour it was given by the layout
// pass.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert the SVG with [render.ToPDF] or
// [render.ToPNG].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [render.ToPDF]: github.com/matzehuels/coursegrid/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/coursegrid/pkg/render.ToPNG
package nodelink
