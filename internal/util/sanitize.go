package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 80

// Slugify lowercases title, folds accented latin letters to ASCII and joins
// the remaining words with single dashes. Letters from other scripts are kept.
func Slugify(title string) string {
	decomposed := norm.NFKD.String(StripInvisible(title))

	builder := strings.Builder{}
	builder.Grow(len(decomposed))

	pendingDash := false
	for _, char := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, char):
			continue
		case unicode.IsLetter(char) || unicode.IsDigit(char):
			if pendingDash && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingDash = false
			builder.WriteRune(unicode.ToLower(char))
		default:
			pendingDash = true
		}
	}

	runes := []rune(builder.String())
	if len(runes) > maxSlugLength {
		runes = runes[:maxSlugLength]
	}

	return strings.Trim(string(runes), "-")
}

// StripInvisible removes control, zero-width and other format characters.
func StripInvisible(value string) string {
	builder := strings.Builder{}
	builder.Grow(len(value))

	for _, char := range value {
		if unicode.IsControl(char) || isInvisibleUnicode(char) {
			continue
		}
		builder.WriteRune(char)
	}

	return builder.String()
}

// isInvisibleUnicode returns true for zero-width, formatting, and other
// invisible Unicode characters.
func isInvisibleUnicode(r rune) bool {
	switch r {
	case
		'\u200B', // Zero-Width Space
		'\u200C', // Zero-Width Non-Joiner
		'\u200D', // Zero-Width Joiner
		'\u200E', // Left-to-Right Mark
		'\u200F', // Right-to-Left Mark
		'\u2060', // Word Joiner
		'\uFEFF': // Zero-Width No-Break Space / BOM
		return true
	}

	return unicode.Is(unicode.Cf, r)
}
