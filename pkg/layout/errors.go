package layout

import (
	"fmt"

	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
)

// SemesterOrderError reports a requirement that is not scheduled in an
// earlier semester than the course requiring it. Such an edge cannot be
// routed left to right.
type SemesterOrderError struct {
	Requirement         string
	Course              string
	RequirementSemester int
	CourseSemester      int
}

func (e *SemesterOrderError) Error() string {
	return fmt.Sprintf("requirement %q (semester %d) is not before %q (semester %d)",
		e.Requirement, e.RequirementSemester, e.Course, e.CourseSemester)
}

// Code implements apperrors.Coder.
func (e *SemesterOrderError) Code() apperrors.Code { return apperrors.ErrCodeSemesterOrder }
