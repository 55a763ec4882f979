package errors

import (
	"strings"
	"unicode"
)

// ValidateGlyphName validates a glyph name for safety and correctness.
// Glyph names become cache-key components and file names for exported
// artifacts, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateGlyphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "glyph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidDocument, "glyph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "glyph name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDocument, "glyph name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateLayerName validates an output layer name.
// Layer names must be simple identifiers without path components.
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfiguration, "layer name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidConfiguration, "layer name cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidConfiguration, "layer name cannot be a hidden file")
	}
	return nil
}

// ValidateOutputPath validates a destination file path for exported
// artifacts. It prevents traversal outside the working tree and rejects
// unreasonable lengths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "output path too long (max 500 characters)")
	}
	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "output path contains null byte")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "output path cannot contain parent directory references")
		}
	}
	return nil
}
