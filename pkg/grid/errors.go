package grid

import (
	"fmt"

	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
)

// InvalidConfigurationError reports a configuration value that cannot
// produce a usable grid.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid grid configuration: %s %s", e.Field, e.Reason)
}

// Code implements apperrors.Coder.
func (e *InvalidConfigurationError) Code() apperrors.Code { return apperrors.ErrCodeInvalidConfig }

// CellOutOfRangeError is returned by [Placer.Place] when a bounded grid has
// no cell for a course.
type CellOutOfRangeError struct {
	Course      string
	Column, Row int
	Columns     int // 0 when unbounded
	Rows        int // 0 when unbounded
}

func (e *CellOutOfRangeError) Error() string {
	return fmt.Sprintf("course %q at column %d row %d does not fit a %dx%d grid",
		e.Course, e.Column, e.Row, e.Columns, e.Rows)
}

// Code implements apperrors.Coder.
func (e *CellOutOfRangeError) Code() apperrors.Code { return apperrors.ErrCodeCellOutOfRange }
