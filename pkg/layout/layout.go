package layout

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/route"
)

// Box is a placed course.
type Box struct {
	Code     string
	Name     string
	Duration float64
	Semester int
	grid.Geometry
}

// RoutedEdge is a requirement edge ready to be drawn.
type RoutedEdge struct {
	route.Path
	Color     string
	LineWidth float64
}

// Lane is one allocated lane of a corridor.
type Lane struct {
	Edge   string
	Offset float64
}

// Layout is the result of one pass.
type Layout struct {
	RunID         string // unique per pass, not part of the geometry
	Config        grid.Config
	Width, Height float64
	Boxes         []Box        // column by column, rows top to bottom
	Edges         []RoutedEdge // edge discovery order
	Corridors     []route.CorridorKey
	Lanes         map[route.CorridorKey][]Lane
	Crossings     []route.Crossing // only with WithCrossingCheck
}

// Context holds the state of one layout pass. It is created by [Build] and
// never shared between passes.
type Context struct {
	RunID     string
	Graph     *curriculum.Graph
	Placer    *grid.Placer
	Placement *grid.Placement
	Lanes     *route.LaneRegistry
	Router    *route.Router
	Colors    *route.ColorAssigner
	Logger    *log.Logger
}

func newContext(g *curriculum.Graph, cfg grid.Config, o options) (*Context, error) {
	placer, err := grid.NewPlacer(cfg)
	if err != nil {
		return nil, err
	}
	lanes, err := route.NewLaneRegistry(placer, cfg.LanePitch)
	if err != nil {
		return nil, err
	}
	router, err := route.NewRouter(cfg)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	return &Context{
		RunID:  runID,
		Graph:  g,
		Placer: placer,
		Lanes:  lanes,
		Router: router,
		Colors: route.NewColorAssigner(o.palette, o.fallback),
		Logger: o.logger.With("run", runID),
	}, nil
}

// Build lays out g with cfg. The graph is finalized first if needed; any
// error aborts the pass and no partial layout is returned.
func Build(g *curriculum.Graph, cfg grid.Config, opts ...Option) (*Layout, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := g.Finalize(); err != nil {
		return nil, err
	}

	ctx, err := newContext(g, cfg, o)
	if err != nil {
		return nil, err
	}

	if err := ctx.place(); err != nil {
		return nil, err
	}
	edges := g.Edges()
	if err := ctx.reserve(edges); err != nil {
		return nil, err
	}
	ctx.allocate()
	routed, err := ctx.route(edges)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		RunID:     ctx.RunID,
		Config:    cfg,
		Boxes:     ctx.boxes(),
		Edges:     routed,
		Corridors: ctx.Lanes.Corridors(),
		Lanes:     ctx.lanes(),
	}
	l.Width, l.Height = ctx.Placement.Bounds()

	if o.crossings {
		l.Crossings = ctx.crossings(l)
		for _, c := range l.Crossings {
			ctx.Logger.Warn("edge crosses course", "edge", c.Edge, "course", c.Course)
		}
	}

	ctx.Logger.Debug("layout complete",
		"courses", len(l.Boxes),
		"edges", len(l.Edges),
		"corridors", len(l.Corridors),
		"crossings", len(l.Crossings))
	return l, nil
}

func (c *Context) place() error {
	placement, err := c.Placer.Place(c.Graph.NodesBySemester())
	if err != nil {
		return err
	}
	c.Placement = placement
	c.Logger.Debug("placed courses", "columns", placement.Columns(), "rows", placement.Rows())
	return nil
}

func (c *Context) endpoints(e curriculum.Edge) (src, dst *grid.Geometry, err error) {
	src, ok := c.Placement.Geometry(e.From)
	if !ok {
		return nil, nil, fmt.Errorf("edge %s: no cell for %s", e.ID(), e.From)
	}
	dst, ok = c.Placement.Geometry(e.To)
	if !ok {
		return nil, nil, fmt.Errorf("edge %s: no cell for %s", e.ID(), e.To)
	}
	return src, dst, nil
}

func (c *Context) reserve(edges []curriculum.Edge) error {
	for _, e := range edges {
		src, dst, err := c.endpoints(e)
		if err != nil {
			return err
		}
		if dst.Column <= src.Column {
			return &SemesterOrderError{
				Requirement:         e.From,
				Course:              e.To,
				RequirementSemester: src.Column + 1,
				CourseSemester:      dst.Column + 1,
			}
		}
		if _, err := c.Lanes.Reserve(e, *src, *dst); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) allocate() {
	c.Lanes.Allocate()
	for _, key := range c.Lanes.Corridors() {
		n := len(c.Lanes.Lanes(key))
		if c.Lanes.Overflows(key) {
			c.Logger.Warn("corridor too narrow for its lanes",
				"corridor", key.String(), "lanes", n, "width", c.Lanes.Span(key).Width())
			continue
		}
		c.Logger.Debug("allocated corridor", "corridor", key.String(), "lanes", n)
	}
}

func (c *Context) route(edges []curriculum.Edge) ([]RoutedEdge, error) {
	lineWidth := c.Placer.Config().LineWidth
	for _, e := range edges {
		target, _ := c.Graph.Node(e.To)
		c.Colors.Assign(e.From, len(target.Requirements))
	}
	out := make([]RoutedEdge, 0, len(edges))
	for _, e := range edges {
		src, dst, err := c.endpoints(e)
		if err != nil {
			return nil, err
		}
		target, _ := c.Graph.Node(e.To)
		path, err := c.Router.Route(e, src, dst, target.Requirements, c.Lanes)
		if err != nil {
			return nil, err
		}
		out = append(out, RoutedEdge{
			Path:      path,
			Color:     c.Colors.Color(e.From),
			LineWidth: lineWidth,
		})
	}
	return out, nil
}

func (c *Context) boxes() []Box {
	var out []Box
	for _, col := range c.Graph.NodesBySemester() {
		for _, n := range col {
			g, _ := c.Placement.Geometry(n.Code)
			out = append(out, Box{
				Code:     n.Code,
				Name:     n.Name,
				Duration: n.Duration,
				Semester: n.Semester,
				Geometry: *g,
			})
		}
	}
	return out
}

func (c *Context) lanes() map[route.CorridorKey][]Lane {
	out := make(map[route.CorridorKey][]Lane)
	for _, key := range c.Lanes.Corridors() {
		for _, e := range c.Lanes.Lanes(key) {
			offset, _ := c.Lanes.Offset(key, e)
			out[key] = append(out[key], Lane{Edge: e.ID(), Offset: offset})
		}
	}
	return out
}

func (c *Context) crossings(l *Layout) []route.Crossing {
	obstacles := make([]route.Obstacle, len(l.Boxes))
	for i, b := range l.Boxes {
		obstacles[i] = route.Obstacle{Code: b.Code, Box: b.Box}
	}
	paths := make([]route.Path, len(l.Edges))
	for i, e := range l.Edges {
		paths[i] = e.Path
	}
	return route.FindCrossings(obstacles, paths)
}
