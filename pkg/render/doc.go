// Package render draws finished layouts.
//
// # Overview
//
// [Draw] walks a serialized [graph.Layout] and hands every primitive to a
// [Renderer]: all boxes first, then each edge followed by its arrowhead, in
// edge order. Later edges paint over earlier ones, so the order is part of
// the output.
//
// Backends:
//
//   - [sink]: standalone SVG documents
//   - [nodelink]: Graphviz DOT with one rank per semester
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg).
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Text Fitting
//
// Course names are drawn at the largest size that fits the box width.
// [FitFontSize] finds that size by binary search over a [TextMetrics]
// measure; [ApproxMetrics] estimates widths from the font size alone.
//
// [sink]: github.com/matzehuels/coursegrid/pkg/render/sink
// [nodelink]: github.com/matzehuels/coursegrid/pkg/render/nodelink
package render
