// Package pkg holds the libraries behind coursegrid.
//
// # Overview
//
// Coursegrid draws a curriculum as a grid: one column per semester, one
// box per course, and one orthogonal arrow per prerequisite. Arrows leave
// a course on its right edge, travel through reserved lanes in the gaps
// between boxes and enter the requiring course on its left edge.
//
// The packages fall into three groups:
//
//  1. Domain: [curriculum], [grid], [route] and [layout]
//  2. Data: [source], [graph] and [config]
//  3. Delivery: [render], [pipeline], [cache], [server] and [observability]
//
// # Data Flow
//
//	CSV rows
//	   ↓
//	[source] (read rows, filter requirement codes)
//	   ↓
//	[curriculum] (validated DAG)
//	   ↓
//	[layout] (grid placement, lane reservation, routing, colours)
//	   ↓
//	[graph] (serializable layout)
//	   ↓
//	[render] (SVG, PNG, PDF, DOT)
//
// # Quick Start
//
//	g, err := pipeline.Load(ctx, "ec.csv", data, pipeline.Options{
//	    Prefixes: []string{"ENC", "MAT"},
//	})
//	if err != nil {
//	    return err
//	}
//	l, err := pipeline.GenerateLayout(g, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l)
//
// [curriculum]: github.com/matzehuels/coursegrid/pkg/curriculum
// [grid]: github.com/matzehuels/coursegrid/pkg/grid
// [route]: github.com/matzehuels/coursegrid/pkg/route
// [layout]: github.com/matzehuels/coursegrid/pkg/layout
// [source]: github.com/matzehuels/coursegrid/pkg/source
// [graph]: github.com/matzehuels/coursegrid/pkg/graph
// [config]: github.com/matzehuels/coursegrid/pkg/config
// [render]: github.com/matzehuels/coursegrid/pkg/render
// [pipeline]: github.com/matzehuels/coursegrid/pkg/pipeline
// [cache]: github.com/matzehuels/coursegrid/pkg/cache
// [server]: github.com/matzehuels/coursegrid/pkg/server
// [observability]: github.com/matzehuels/coursegrid/pkg/observability
package pkg
