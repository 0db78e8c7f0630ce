package errors

import (
	"strings"
	"unicode"
)

// ValidateElementName validates a layout element name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No whitespace (names are used as flat JSON keys and CLI arguments)
//   - Maximum length of 64 characters
func ValidateElementName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "element name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "element name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "element name contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "element name cannot contain whitespace")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for rendering.
// It rejects empty paths and null bytes; everything else is left to the OS.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains invalid characters")
	}
	return nil
}
