package route

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/grid"
)

// ErrLaneNotAllocated is returned by [Router.Route] when a corridor the edge
// needs has no lane for it, usually because the edge was never reserved or
// [LaneRegistry.Allocate] was not called after the last reservation.
var ErrLaneNotAllocated = errors.New("lane not allocated")

// Arrowhead is drawn as two strokes from Tip back to each wing.
type Arrowhead struct {
	Tip   grid.Point    `json:"tip" bson:"tip"`
	Wings [2]grid.Point `json:"wings" bson:"wings"`
	Size  float64       `json:"size" bson:"size"`
}

// Path is a routed edge.
type Path struct {
	Edge      curriculum.Edge
	Plan      Plan
	Points    []grid.Point // 4 points for adjacent columns, 6 with a jog
	Arrowhead Arrowhead
}

// Router builds edge polylines from allocated lanes. It never changes the
// registry it reads from.
type Router struct {
	cfg grid.Config
}

// NewRouter returns a router for cfg.
func NewRouter(cfg grid.Config) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Router{cfg: cfg}, nil
}

// AttachOffset returns the vertical offset of the idx-th of k edges entering
// one course: spacing*(idx - (k-1)/2). Offsets are strictly increasing in idx
// and sum to zero. A single edge attaches at the centre.
func AttachOffset(idx, k int, spacing float64) float64 {
	if k <= 1 {
		return 0
	}
	return spacing * (float64(idx) - float64(k-1)/2)
}

// Route returns the polyline of edge from src to dst. requirements is the
// target's sorted requirement list; the edge's position in it decides where
// on the target's back side the edge attaches.
func (r *Router) Route(edge curriculum.Edge, src, dst *grid.Geometry, requirements []string, lanes *LaneRegistry) (Path, error) {
	plan, err := PlanEdge(*src, *dst)
	if err != nil {
		return Path{}, fmt.Errorf("route %s: %w", edge.ID(), err)
	}

	k := len(requirements)
	idx := slices.Index(requirements, edge.From)
	if idx < 0 {
		return Path{}, fmt.Errorf("route %s: %s is not a requirement of %s", edge.ID(), edge.From, edge.To)
	}

	lane := func(key CorridorKey) (float64, error) {
		v, ok := lanes.Offset(key, edge)
		if !ok {
			return 0, fmt.Errorf("route %s: corridor %s: %w", edge.ID(), key, ErrLaneNotAllocated)
		}
		return v, nil
	}

	start := src.Front
	end := dst.Back
	end.Y += AttachOffset(idx, k, r.cfg.AttachSpacing)

	exitX, err := lane(plan.Exit)
	if err != nil {
		return Path{}, err
	}

	points := []grid.Point{start, {X: exitX, Y: start.Y}}
	if plan.HasJog {
		jogY, err := lane(plan.Jog)
		if err != nil {
			return Path{}, err
		}
		entryX, err := lane(plan.Entry)
		if err != nil {
			return Path{}, err
		}
		points = append(points,
			grid.Point{X: exitX, Y: jogY},
			grid.Point{X: entryX, Y: jogY},
			grid.Point{X: entryX, Y: end.Y},
		)
	} else {
		points = append(points, grid.Point{X: exitX, Y: end.Y})
	}
	points = append(points, end)

	return Path{
		Edge:      edge,
		Plan:      plan,
		Points:    points,
		Arrowhead: r.arrowhead(end),
	}, nil
}

func (r *Router) arrowhead(tip grid.Point) Arrowhead {
	back := tip.X - r.cfg.ArrowSize
	half := r.cfg.ArrowWidth / 2
	return Arrowhead{
		Tip:   tip,
		Wings: [2]grid.Point{{X: back, Y: tip.Y - half}, {X: back, Y: tip.Y + half}},
		Size:  r.cfg.ArrowSize,
	}
}
