package curriculum

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
)

// ErrFinalized is returned by [Graph.AddNode] and [Graph.AddRequirement]
// once [Graph.Finalize] has succeeded. A finalized graph is read-only.
var ErrFinalized = errors.New("graph is finalized")

// InvalidNodeError reports a node that cannot be added: an empty code or a
// semester below 1.
type InvalidNodeError struct {
	Course string
	Reason string
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid course %q: %s", e.Course, e.Reason)
}

// Code implements apperrors.Coder.
func (e *InvalidNodeError) Code() apperrors.Code { return apperrors.ErrCodeInvalidNode }

// DuplicateNodeError is returned by [Graph.AddNode] when two rows declare
// the same course code.
type DuplicateNodeError struct {
	Course string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate course %q", e.Course)
}

// Code implements apperrors.Coder.
func (e *DuplicateNodeError) Code() apperrors.Code { return apperrors.ErrCodeDuplicateNode }

// UnknownTargetError is returned by [Graph.AddRequirement] when the course
// receiving the requirement has not been added yet.
type UnknownTargetError struct {
	Course string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown course %q", e.Course)
}

// Code implements apperrors.Coder.
func (e *UnknownTargetError) Code() apperrors.Code { return apperrors.ErrCodeUnknownTarget }

// DanglingReferenceError is returned by [Graph.Finalize] and lists every
// requirement code that does not resolve to a course, sorted.
type DanglingReferenceError struct {
	Courses []string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("unresolved requirements: %s", strings.Join(e.Courses, ", "))
}

// Code implements apperrors.Coder.
func (e *DanglingReferenceError) Code() apperrors.Code { return apperrors.ErrCodeDanglingReference }

// CycleDetectedError is returned by [Graph.Finalize] when the requirement
// relation is not acyclic. Courses holds the codes left unordered by the
// topological sort (every course on or behind a cycle), sorted.
type CycleDetectedError struct {
	Courses []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("requirement cycle among: %s", strings.Join(e.Courses, ", "))
}

// Code implements apperrors.Coder.
func (e *CycleDetectedError) Code() apperrors.Code { return apperrors.ErrCodeCycleDetected }
