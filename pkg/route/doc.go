// Package route draws prerequisite edges as orthogonal polylines through the
// gaps of a [grid.Placement].
//
// Routing is a two-phase channel assignment. Every edge first reserves the
// corridors it will travel through ([LaneRegistry.Reserve]): the vertical
// corridor right of its source column, the vertical corridor left of its
// target column and, when it skips at least one column, a horizontal corridor
// for the jog. [LaneRegistry.Allocate] then gives every edge in a corridor
// its own lane, spaced by a fixed pitch and centred on the corridor's
// midpoint. Edges sharing a corridor therefore never share a lane; edges in
// different corridors may still cross, which [FindCrossings] reports.
//
// [Router.Route] turns an edge and the allocated lanes into a [Path]. When a
// course has several requirements the incoming edges attach at points fanned
// out around the middle of its left side, in requirement order.
//
// [ColorAssigner] picks a stable stroke colour per source course so that
// edges converging on one course can be told apart.
package route
