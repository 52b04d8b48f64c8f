package route

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/grid"
)

// ErrBackwardEdge is returned for an edge whose target column is not right
// of its source column.
var ErrBackwardEdge = errors.New("edge does not point to a later column")

// Axis tells vertical corridors (between columns) from horizontal ones
// (between rows).
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "h"
	}
	return "v"
}

// CorridorKey identifies a corridor. Vertical corridor i lies right of
// column i, horizontal corridor i lies below row i.
type CorridorKey struct {
	Axis  Axis
	Index int
}

// Vertical returns the key of the corridor right of column.
func Vertical(column int) CorridorKey { return CorridorKey{Axis: AxisVertical, Index: column} }

// Horizontal returns the key of the corridor below row.
func Horizontal(row int) CorridorKey { return CorridorKey{Axis: AxisHorizontal, Index: row} }

func (k CorridorKey) String() string { return fmt.Sprintf("%s%d", k.Axis, k.Index) }

// Compare orders keys vertical first, then by index.
func (k CorridorKey) Compare(o CorridorKey) int {
	if c := cmp.Compare(k.Axis, o.Axis); c != 0 {
		return c
	}
	return cmp.Compare(k.Index, o.Index)
}

// Plan lists the corridors an edge travels through.
type Plan struct {
	Exit   CorridorKey // vertical corridor right of the source column
	Entry  CorridorKey // vertical corridor left of the target column
	Jog    CorridorKey // horizontal corridor, valid when HasJog
	HasJog bool
}

// Keys returns the planned corridors in travel order. Exit and Entry are the
// same corridor for adjacent columns and then appear once.
func (p Plan) Keys() []CorridorKey {
	keys := []CorridorKey{p.Exit}
	if p.HasJog {
		keys = append(keys, p.Jog)
	}
	if p.Entry != p.Exit {
		keys = append(keys, p.Entry)
	}
	return keys
}

// PlanEdge returns the corridors for an edge from src to dst.
//
// An edge skipping a column jogs through horizontal corridor 0 when both ends
// sit in row 0 and through the corridor above the target row otherwise. This
// keeps the jog clear of the target column's boxes but does not guarantee it
// clears the columns in between.
func PlanEdge(src, dst grid.Geometry) (Plan, error) {
	if dst.Column <= src.Column {
		return Plan{}, ErrBackwardEdge
	}
	p := Plan{
		Exit:  Vertical(src.Column),
		Entry: Vertical(dst.Column - 1),
	}
	if src.Column+1 < dst.Column {
		p.HasJog = true
		if src.Row == 0 && dst.Row == 0 {
			p.Jog = Horizontal(0)
		} else {
			p.Jog = Horizontal(dst.Row - 1)
		}
	}
	return p, nil
}

// LaneRegistry assigns lanes inside corridors. It belongs to a single layout
// run and is not safe for concurrent use.
type LaneRegistry struct {
	placer  *grid.Placer
	pitch   float64
	members map[CorridorKey][]curriculum.Edge // distinct edges in first-reservation order
	offsets map[CorridorKey]map[curriculum.Edge]float64
}

// NewLaneRegistry returns an empty registry. Corridor spans come from placer;
// pitch is the distance between neighbouring lanes and must be positive.
func NewLaneRegistry(placer *grid.Placer, pitch float64) (*LaneRegistry, error) {
	if !(pitch > 0) {
		return nil, &grid.InvalidConfigurationError{Field: "lane_pitch", Reason: "must be positive"}
	}
	return &LaneRegistry{
		placer:  placer,
		pitch:   pitch,
		members: make(map[CorridorKey][]curriculum.Edge),
	}, nil
}

// Reserve records that edge travels from src to dst and returns its plan.
// Edges are told apart by their endpoints, never by [curriculum.Edge.ID].
// Reserving the same edge twice is harmless. Any earlier allocation is
// dropped; call [LaneRegistry.Allocate] again before routing.
func (r *LaneRegistry) Reserve(edge curriculum.Edge, src, dst grid.Geometry) (Plan, error) {
	plan, err := PlanEdge(src, dst)
	if err != nil {
		return Plan{}, fmt.Errorf("reserve %s: %w", edge.ID(), err)
	}
	for _, key := range plan.Keys() {
		if !slices.Contains(r.members[key], edge) {
			r.members[key] = append(r.members[key], edge)
		}
	}
	r.offsets = nil
	return plan, nil
}

// Allocate computes the lane offsets of every corridor. The n edges of a
// corridor get mid + pitch*(i - (n-1)/2) for i in reservation order, so the
// lanes are pitch apart and symmetric about the corridor midpoint. Allocate
// depends only on the reservations and may be repeated.
func (r *LaneRegistry) Allocate() {
	offsets := make(map[CorridorKey]map[curriculum.Edge]float64, len(r.members))
	for key, edges := range r.members {
		mid := r.Span(key).Mid()
		center := float64(len(edges)-1) / 2
		lanes := make(map[curriculum.Edge]float64, len(edges))
		for i, e := range edges {
			lanes[e] = mid + r.pitch*(float64(i)-center)
		}
		offsets[key] = lanes
	}
	r.offsets = offsets
}

// Allocated reports whether lanes are available for routing.
func (r *LaneRegistry) Allocated() bool { return r.offsets != nil }

// Offset returns the allocated coordinate of edge in the corridor: an x for
// vertical corridors, a y for horizontal ones.
func (r *LaneRegistry) Offset(key CorridorKey, edge curriculum.Edge) (float64, bool) {
	v, ok := r.offsets[key][edge]
	return v, ok
}

// Span returns the coordinate range of a corridor.
func (r *LaneRegistry) Span(key CorridorKey) grid.Span {
	if key.Axis == AxisHorizontal {
		return r.placer.HorizontalCorridor(key.Index)
	}
	return r.placer.VerticalCorridor(key.Index)
}

// Corridors returns every corridor holding a reservation, sorted.
func (r *LaneRegistry) Corridors() []CorridorKey {
	keys := make([]CorridorKey, 0, len(r.members))
	for k := range r.members {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CorridorKey.Compare)
	return keys
}

// Lanes returns the edges of a corridor in lane order.
func (r *LaneRegistry) Lanes(key CorridorKey) []curriculum.Edge {
	return slices.Clone(r.members[key])
}

// Overflows reports whether the lanes of a corridor need more room than the
// corridor has. Overflowing lanes spill onto the neighbouring boxes.
func (r *LaneRegistry) Overflows(key CorridorKey) bool {
	n := len(r.members[key])
	return n > 1 && float64(n-1)*r.pitch > r.Span(key).Width()
}

// Pitch returns the lane spacing.
func (r *LaneRegistry) Pitch() float64 { return r.pitch }
