package errors

import (
	"strings"
	"unicode"
)

// ValidateLayerID validates a layer identifier for safety and
// correctness. IDs travel through documents, cache keys and DOT graphs,
// so the rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateLayerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "layer id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "layer id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "layer id contains invalid control characters")
		}
	}
	return nil
}

// ValidateFileName validates an export file stem. It must be a simple
// basename without path components or traversal sequences.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidPath, "file name too long (max 256 characters)")
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters: %q", pattern)
		}
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a scene file path supplied by a caller. It
// rejects traversal outside the working tree when the path is relative
// and null bytes everywhere.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}
	return nil
}
