package curriculum

import (
	"slices"
	"strings"
)

// Node is one course of the curriculum.
//
// Requirements holds the codes of the courses that must be taken first. It is
// kept deduplicated and sorted so that the order in which converging edges
// attach to the course is stable across runs.
type Node struct {
	Code         string
	Name         string
	Duration     float64
	Semester     int // 1-based; column = Semester-1
	Requirements []string
}

// RequirementIndex returns the position of code in the node's sorted
// requirement list, or -1 if the node does not require it.
func (n *Node) RequirementIndex(code string) int {
	i, ok := slices.BinarySearch(n.Requirements, code)
	if !ok {
		return -1
	}
	return i
}

// edgeSeparator joins the endpoints of an [Edge.ID].
const edgeSeparator = "->"

// Edge is a directed prerequisite relation: From must be taken before To.
type Edge struct {
	From string // requirement (source)
	To   string // course that requires it (target)
}

// ID returns a readable identifier for the edge. It is unique within a graph
// because AddNode rejects codes containing the separator.
func (e Edge) ID() string { return e.From + edgeSeparator + e.To }

// Graph holds courses and their requirements.
//
// Courses are recorded in first-seen order and, per semester, in an
// append-only sequence; that order decides grid rows. Requirements may name
// courses that are added later; they are resolved by [Graph.Finalize].
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// mutation; a finalized graph is read-only and may be shared.
type Graph struct {
	nodes      map[string]*Node
	order      []string            // insertion order of codes
	semesters  [][]*Node           // semester-1 -> nodes in first-seen order
	dependents map[string][]string // requirement -> courses requiring it (after Finalize)
	topo       []string            // canonical visitation order (after Finalize)
	finalized  bool
}

// New creates an empty curriculum graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a course. It fails with *DuplicateNodeError if the code is
// already present and *InvalidNodeError for an empty code, a code containing
// "->" or a semester below 1.
func (g *Graph) AddNode(code, name string, duration float64, semester int) error {
	if g.finalized {
		return ErrFinalized
	}
	if code == "" {
		return &InvalidNodeError{Course: code, Reason: "empty code"}
	}
	if strings.Contains(code, edgeSeparator) {
		return &InvalidNodeError{Course: code, Reason: "code contains " + edgeSeparator}
	}
	if semester < 1 {
		return &InvalidNodeError{Course: code, Reason: "semester must be at least 1"}
	}
	if _, exists := g.nodes[code]; exists {
		return &DuplicateNodeError{Course: code}
	}

	n := &Node{Code: code, Name: name, Duration: duration, Semester: semester}
	g.nodes[code] = n
	g.order = append(g.order, code)
	for len(g.semesters) < semester {
		g.semesters = append(g.semesters, nil)
	}
	g.semesters[semester-1] = append(g.semesters[semester-1], n)
	return nil
}

// AddRequirement records that target requires requirement. Repeated pairs are
// ignored and the target's list stays sorted. The requirement code is not
// checked here; unresolved codes are reported by [Graph.Finalize].
func (g *Graph) AddRequirement(target, requirement string) error {
	if g.finalized {
		return ErrFinalized
	}
	n, ok := g.nodes[target]
	if !ok {
		return &UnknownTargetError{Course: target}
	}
	i, found := slices.BinarySearch(n.Requirements, requirement)
	if !found {
		n.Requirements = slices.Insert(n.Requirements, i, requirement)
	}
	return nil
}

// Finalize resolves every requirement and fixes the canonical node order.
//
// It fails with *DanglingReferenceError naming every requirement that does
// not resolve to a course, or *CycleDetectedError if the requirements do not
// form a DAG. On success the graph becomes read-only. Calling Finalize again
// is a no-op.
func (g *Graph) Finalize() error {
	if g.finalized {
		return nil
	}

	var dangling []string
	for _, code := range g.order {
		for _, req := range g.nodes[code].Requirements {
			if _, ok := g.nodes[req]; !ok {
				dangling = append(dangling, req)
			}
		}
	}
	if len(dangling) > 0 {
		slices.Sort(dangling)
		return &DanglingReferenceError{Courses: slices.Compact(dangling)}
	}

	dependents := make(map[string][]string, len(g.nodes))
	for _, code := range g.order {
		for _, req := range g.nodes[code].Requirements {
			dependents[req] = append(dependents[req], code)
		}
	}

	topo, err := topoSort(g.order, g.nodes, dependents)
	if err != nil {
		return err
	}

	g.dependents = dependents
	g.topo = topo
	g.finalized = true
	return nil
}

// IsFinalized reports whether [Graph.Finalize] has succeeded.
func (g *Graph) IsFinalized() bool { return g.finalized }

// Node returns the course with the given code.
func (g *Graph) Node(code string) (*Node, bool) {
	n, ok := g.nodes[code]
	return n, ok
}

// Nodes returns all courses in first-seen order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, code := range g.order {
		nodes[i] = g.nodes[code]
	}
	return nodes
}

// NodeCount returns the number of courses.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of unique (requirement, course) pairs.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, node := range g.nodes {
		n += len(node.Requirements)
	}
	return n
}

// Semesters returns the highest semester that holds a course.
func (g *Graph) Semesters() int { return len(g.semesters) }

// NodesBySemester groups courses by semester. Index s-1 holds semester s in
// first-seen order; semesters without courses are empty. The outer and inner
// slices are copies.
func (g *Graph) NodesBySemester() [][]*Node {
	out := make([][]*Node, len(g.semesters))
	for i, col := range g.semesters {
		out[i] = slices.Clone(col)
	}
	return out
}

// TopoOrder returns the canonical visitation order: a topological order of
// the requirement DAG with ties broken by first-seen order. It is nil until
// the graph is finalized.
func (g *Graph) TopoOrder() []string { return slices.Clone(g.topo) }

// Dependents returns the courses that require code, in first-seen order.
// It is nil until the graph is finalized.
func (g *Graph) Dependents(code string) []string { return g.dependents[code] }

// Edges returns one edge per requirement in discovery order: targets in
// [Graph.TopoOrder] (first-seen order before finalization), each target's
// requirements in sorted order.
func (g *Graph) Edges() []Edge {
	order := g.topo
	if !g.finalized {
		order = g.order
	}
	edges := make([]Edge, 0, g.EdgeCount())
	for _, code := range order {
		for _, req := range g.nodes[code].Requirements {
			edges = append(edges, Edge{From: req, To: code})
		}
	}
	return edges
}
