package route

import (
	"slices"

	"github.com/tidwall/rtree"

	"github.com/matzehuels/coursegrid/pkg/grid"
)

// Obstacle is a course box that edges should not pass through.
type Obstacle struct {
	Code string
	Box  grid.Rect
}

// Crossing reports a path segment running through the box of a course that
// is neither end of the edge.
type Crossing struct {
	Edge    string        `json:"edge" bson:"edge"`
	Course  string        `json:"course" bson:"course"`
	Segment [2]grid.Point `json:"segment" bson:"segment"`
}

// FindCrossings checks every segment of paths against the obstacles. Lanes
// only keep edges apart inside one corridor, so a jog can still cut through a
// box in a column it skips; this surfaces those cases. Touching a box border
// does not count. Results follow path and segment order, then course code.
func FindCrossings(obstacles []Obstacle, paths []Path) []Crossing {
	var tr rtree.RTreeG[string]
	for _, o := range obstacles {
		tr.Insert([2]float64{o.Box.X0, o.Box.Y0}, [2]float64{o.Box.X1, o.Box.Y1}, o.Code)
	}

	var out []Crossing
	for _, p := range paths {
		for i := 1; i < len(p.Points); i++ {
			a, b := p.Points[i-1], p.Points[i]
			lo := [2]float64{min(a.X, b.X), min(a.Y, b.Y)}
			hi := [2]float64{max(a.X, b.X), max(a.Y, b.Y)}

			var hits []string
			tr.Search(lo, hi, func(bmin, bmax [2]float64, code string) bool {
				if code == p.Edge.From || code == p.Edge.To {
					return true
				}
				if cutsInterior(lo, hi, bmin, bmax) {
					hits = append(hits, code)
				}
				return true
			})
			slices.Sort(hits)
			for _, code := range hits {
				out = append(out, Crossing{Edge: p.Edge.ID(), Course: code, Segment: [2]grid.Point{a, b}})
			}
		}
	}
	return out
}

// cutsInterior reports whether the segment bounded by lo/hi enters the open
// interior of the box.
func cutsInterior(lo, hi, bmin, bmax [2]float64) bool {
	for axis := 0; axis < 2; axis++ {
		if lo[axis] == hi[axis] {
			if lo[axis] <= bmin[axis] || lo[axis] >= bmax[axis] {
				return false
			}
			continue
		}
		if max(lo[axis], bmin[axis]) >= min(hi[axis], bmax[axis]) {
			return false
		}
	}
	return true
}
