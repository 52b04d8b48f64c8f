package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxCodeLength bounds course codes; longer values are almost always a
// misaligned CSV column rather than a real code.
const maxCodeLength = 64

// courseCodeRegex matches institutional course codes such as "ENC-01" or "MAT101".
var courseCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

// ValidateCourseCode validates a course code read from an input row.
//
// The validation rules are intentionally conservative:
//   - No empty codes
//   - No control characters or whitespace
//   - Maximum length of 64 characters
//   - Letters, digits and . _ / - only, starting with a letter or digit
func ValidateCourseCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidNode, "course code cannot be empty")
	}

	if len(code) > maxCodeLength {
		return New(ErrCodeInvalidNode, "course code too long (max %d characters)", maxCodeLength)
	}

	for _, r := range code {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidNode, "course code %q contains whitespace or control characters", code)
		}
	}

	if !courseCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidNode, "invalid course code: %q", code)
	}

	return nil
}

// ValidateOutputPath validates a path the CLI is about to write to.
// It rejects empty paths, null bytes and directory-only paths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains a null byte")
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidInput, "output path %q is a directory", path)
	}

	return nil
}
