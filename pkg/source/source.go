package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
)

// RequirementSeparator splits the requirement column.
const RequirementSeparator = ";"

// Row is one course as read from a source.
type Row struct {
	Code        string `csv:"code" json:"code"`
	Name        string `csv:"name" json:"name"`
	Duration    string `csv:"duration" json:"duration"`
	Semester    string `csv:"semester" json:"semester"`
	Requirement string `csv:"requirement" json:"requirement,omitempty"`
}

// DataSource supplies course rows.
type DataSource interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Static is a DataSource over rows already in memory.
type Static []Row

// Rows implements DataSource.
func (s Static) Rows(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Row(nil), s...), nil
}

// RowError reports a row that could not be turned into a course. Line is the
// 1-based data row, not counting a header.
type RowError struct {
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Code implements apperrors.Coder. Graph errors keep their own code.
func (e *RowError) Code() apperrors.Code {
	if c := apperrors.GetCode(e.Err); c != "" {
		return c
	}
	return apperrors.ErrCodeInvalidInput
}

// Build reads every row of ds and returns the finalized graph. Rows are added
// in source order, which decides the slot of each course in its semester.
func Build(ctx context.Context, ds DataSource, filter RequirementFilter) (*curriculum.Graph, error) {
	if filter == nil {
		filter = AcceptAll
	}
	rows, err := ds.Rows(ctx)
	if err != nil {
		return nil, err
	}

	g := curriculum.New()
	for i, row := range rows {
		if err := addRow(g, i+1, row, filter); err != nil {
			return nil, err
		}
	}
	if err := g.Finalize(); err != nil {
		return nil, err
	}
	return g, nil
}

func addRow(g *curriculum.Graph, line int, row Row, filter RequirementFilter) error {
	code := strings.TrimSpace(row.Code)
	if err := apperrors.ValidateCourseCode(code); err != nil {
		return &RowError{Line: line, Field: "code", Err: err}
	}

	duration, err := parseDuration(row.Duration)
	if err != nil {
		return &RowError{Line: line, Field: "duration", Err: err}
	}
	semester, err := strconv.Atoi(strings.TrimSpace(row.Semester))
	if err != nil {
		return &RowError{Line: line, Field: "semester", Err: err}
	}
	if semester < 1 {
		return &RowError{Line: line, Field: "semester", Err: fmt.Errorf("must be at least 1, got %d", semester)}
	}

	if err := g.AddNode(code, strings.TrimSpace(row.Name), duration, semester); err != nil {
		return &RowError{Line: line, Field: "code", Err: err}
	}
	for _, req := range SplitRequirements(row.Requirement) {
		if !filter(req) {
			continue
		}
		if err := g.AddRequirement(code, req); err != nil {
			return &RowError{Line: line, Field: "requirement", Err: err}
		}
	}
	return nil
}

func parseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative: %v", d)
	}
	return d, nil
}

// SplitRequirements splits a requirement column into trimmed, non-empty
// codes.
func SplitRequirements(s string) []string {
	var out []string
	for _, part := range strings.Split(s, RequirementSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
