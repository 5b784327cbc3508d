package errors

import (
	"strings"
	"unicode"
)

// ValidatePinName validates an I/O pin name from a design file.
// It rejects names that could break report output or cache key derivation.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidatePinName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDesign, "pin name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDesign, "pin name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDesign, "pin name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidDesign, "pin name cannot contain whitespace: %q", name)
		}
	}

	return nil
}

// ValidateRunID validates a placement run identifier used in store lookups
// and HTTP paths. Run IDs are UUID-shaped: hex digits and dashes only.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run ID cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "run ID too long")
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			return New(ErrCodeInvalidInput, "run ID contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePath validates a file path supplied on the command line for
// safety. It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
