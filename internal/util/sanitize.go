package util

import (
	"strings"
	"unicode"
)

const maxNameRunes = 255

// CleanName normalises a user-supplied entry name: path components, control
// and invisible characters are dropped, surrounding space trimmed and the
// result truncated to 255 runes. An empty result means there was no usable name.
func CleanName(name string) string {
	trimmed := strings.TrimSpace(name)
	if idx := strings.LastIndexAny(trimmed, `/\`); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}

	builder := strings.Builder{}
	builder.Grow(len(trimmed))

	for _, char := range trimmed {
		if unicode.IsControl(char) || isInvisibleUnicode(char) {
			continue
		}

		builder.WriteRune(char)
	}

	cleaned := strings.TrimSpace(builder.String())

	// Truncate by runes (not bytes) to avoid splitting multi-byte characters.
	runes := []rune(cleaned)
	if len(runes) > maxNameRunes {
		runes = runes[:maxNameRunes]
	}
	cleaned = string(runes)

	if cleaned == "." || cleaned == ".." {
		return ""
	}

	return cleaned
}

// isInvisibleUnicode returns true for zero-width, formatting, and other
// invisible Unicode characters that should be stripped from names.
func isInvisibleUnicode(r rune) bool {
	switch r {
	case
		'\u200B', // Zero-Width Space
		'\u200C', // Zero-Width Non-Joiner
		'\u200D', // Zero-Width Joiner
		'\u200E', // Left-to-Right Mark
		'\u200F', // Right-to-Left Mark
		'\u2060', // Word Joiner
		'\uFEFF', // Zero-Width No-Break Space / BOM
		'\uFFF9', // Interlinear Annotation Anchor
		'\uFFFA', // Interlinear Annotation Separator
		'\uFFFB': // Interlinear Annotation Terminator
		return true
	}

	return unicode.Is(unicode.Cf, r)
}
