package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxLabelLength bounds labels read from files or requests. Longer labels
// would produce unusably wide boxes.
const maxLabelLength = 256

// ValidateLabel validates a node label read from a graph document.
//
//   - No empty labels (the zero value is the "null" label)
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "node label cannot be empty")
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "node label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "node label %q contains control characters", label)
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePositive checks that a numeric option is strictly positive.
func ValidatePositive(name string, v float64) error {
	if v <= 0 {
		return New(ErrCodeInvalidOption, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidatePath validates an output path supplied on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
