// Package layout runs one complete layout pass over a curriculum graph.
//
// [Build] places every course on the grid, reserves corridor lanes for every
// requirement edge in discovery order, allocates the lanes, routes each edge
// and assigns its colour. All mutable state of a pass lives in a [Context]
// created by Build, so independent passes can run concurrently on shared,
// finalized graphs.
//
// The result is a [Layout]: boxes, routed edges, the lane table and, when
// requested, the box crossings found by [route.FindCrossings]. Apart from
// the run id it is a pure function of the graph and the configuration.
package layout
