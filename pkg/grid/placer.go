package grid

import (
	"github.com/matzehuels/coursegrid/pkg/curriculum"
)

// Placer computes cell geometry from a validated [Config]. It holds no
// per-run state and may be shared between layout runs.
type Placer struct {
	cfg Config
}

// NewPlacer validates cfg and returns a placer for it.
func NewPlacer(cfg Config) (*Placer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Placer{cfg: cfg}, nil
}

// Config returns the configuration the placer was built with.
func (p *Placer) Config() Config { return p.cfg }

func (p *Placer) columnStep() float64 { return p.cfg.BoxWidth + p.cfg.GapHorizontal }
func (p *Placer) rowStep() float64    { return p.cfg.BoxHeight + p.cfg.GapVertical }

// Cell returns the geometry of the cell at (column, row).
func (p *Placer) Cell(column, row int) Geometry {
	x0 := p.cfg.Start.X + float64(column)*p.columnStep()
	y0 := p.cfg.Start.Y + float64(row)*p.rowStep()
	box := Rect{X0: x0, Y0: y0, X1: x0 + p.cfg.BoxWidth, Y1: y0 + p.cfg.BoxHeight}
	midY := (box.Y0 + box.Y1) / 2
	return Geometry{
		Column: column,
		Row:    row,
		Box:    box,
		Back:   Point{X: box.X0, Y: midY},
		Front:  Point{X: box.X1, Y: midY},
	}
}

// VerticalCorridor returns the x span between the right edge of column and
// the left edge of column+1.
func (p *Placer) VerticalCorridor(column int) Span {
	right := p.cfg.Start.X + float64(column)*p.columnStep() + p.cfg.BoxWidth
	return Span{Start: right, End: right + p.cfg.GapHorizontal}
}

// HorizontalCorridor returns the y span between the bottom edge of row and
// the top edge of row+1.
func (p *Placer) HorizontalCorridor(row int) Span {
	bottom := p.cfg.Start.Y + float64(row)*p.rowStep() + p.cfg.BoxHeight
	return Span{Start: bottom, End: bottom + p.cfg.GapVertical}
}

// Place assigns a cell to every course. bySemester[s] lists the courses of
// semester s+1 in first-seen order, as returned by
// [curriculum.Graph.NodesBySemester]; a course's row is its index there.
//
// On a bounded grid a course outside the configured columns or rows fails
// with *CellOutOfRangeError and nothing is placed.
func (p *Placer) Place(bySemester [][]*curriculum.Node) (*Placement, error) {
	pl := &Placement{
		placer:   p,
		geometry: make(map[string]*Geometry),
		columns:  make([][]string, len(bySemester)),
	}

	for col, nodes := range bySemester {
		for _, n := range nodes {
			row := len(pl.columns[col])
			if err := p.checkRange(n.Code, col, row); err != nil {
				return nil, err
			}
			g := p.Cell(col, row)
			pl.geometry[n.Code] = &g
			pl.columns[col] = append(pl.columns[col], n.Code)
			if row+1 > pl.rows {
				pl.rows = row + 1
			}
		}
	}
	return pl, nil
}

func (p *Placer) checkRange(code string, col, row int) error {
	if (p.cfg.Columns > 0 && col >= p.cfg.Columns) || (p.cfg.Rows > 0 && row >= p.cfg.Rows) {
		return &CellOutOfRangeError{
			Course:  code,
			Column:  col,
			Row:     row,
			Columns: p.cfg.Columns,
			Rows:    p.cfg.Rows,
		}
	}
	return nil
}

// Placement is the result of [Placer.Place].
type Placement struct {
	placer   *Placer
	geometry map[string]*Geometry
	columns  [][]string // per-column append-only sequences of codes
	rows     int        // tallest column
}

// Geometry returns the cell of the course with the given code.
func (pl *Placement) Geometry(code string) (*Geometry, bool) {
	g, ok := pl.geometry[code]
	return g, ok
}

// Column returns the course codes of column i in row order. It returns nil
// for a column outside the placement.
func (pl *Placement) Column(i int) []string {
	if i < 0 || i >= len(pl.columns) {
		return nil
	}
	return append([]string(nil), pl.columns[i]...)
}

// Columns returns the number of columns that were placed, empty ones
// included.
func (pl *Placement) Columns() int { return len(pl.columns) }

// Rows returns the number of rows in the tallest column.
func (pl *Placement) Rows() int { return pl.rows }

// Placer returns the placer that produced the placement.
func (pl *Placement) Placer() *Placer { return pl.placer }

// Bounds returns the canvas size covering every placed column and row plus
// the start margin on both sides.
func (pl *Placement) Bounds() (width, height float64) {
	cfg := pl.placer.cfg
	cols, rows := len(pl.columns), pl.rows
	if cols > 0 {
		width = float64(cols)*pl.placer.columnStep() - cfg.GapHorizontal
	}
	if rows > 0 {
		height = float64(rows)*pl.placer.rowStep() - cfg.GapVertical
	}
	return width + 2*cfg.Start.X, height + 2*cfg.Start.Y
}
