// Package sanitizer normalizes filenames to a consistent format: lowercase,
// underscores for spaces, hyphens for other special characters, common
// accented letters folded to ASCII, extension preserved.
package sanitizer

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// bracketsRegex matches parentheses, brackets, braces.
	bracketsRegex = regexp.MustCompile(`[()[\]{}]`)
	// specialCharsRegex matches any character that's not alphanumeric, underscore, hyphen, or dot.
	specialCharsRegex = regexp.MustCompile(`[^a-z0-9_\-.]`)
	// multiHyphenRegex matches multiple consecutive hyphens.
	multiHyphenRegex = regexp.MustCompile(`-+`)
	// multiUnderscoreRegex matches multiple consecutive underscores.
	multiUnderscoreRegex = regexp.MustCompile(`_+`)
	// trailingRegex matches trailing hyphens or underscores.
	trailingRegex = regexp.MustCompile(`[-_]+$`)
	// leadingRegex matches leading hyphens or underscores.
	leadingRegex = regexp.MustCompile(`^[-_]+`)
	// mixedSeparatorRegex matches underscore-hyphen or hyphen-underscore runs.
	mixedSeparatorRegex = regexp.MustCompile(`(_-)|(-_)`)
)

// accentReplacements folds common accented Latin letters to ASCII.
var accentReplacements = map[rune]rune{
	'ä': 'a', 'å': 'a', 'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a',
	'ö': 'o', 'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o',
	'ü': 'u', 'ù': 'u', 'ú': 'u', 'û': 'u',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ñ': 'n', 'ç': 'c',
}

// Clean converts a filename to the normalized format. A name that reduces
// to nothing keeps its original stem so the caller never ends up with a
// bare extension.
func Clean(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := filename[:len(filename)-len(filepath.Ext(filename))]

	cleaned := strings.ToLower(name)
	cleaned = foldAccents(cleaned)
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	cleaned = bracketsRegex.ReplaceAllString(cleaned, "")
	cleaned = specialCharsRegex.ReplaceAllString(cleaned, "-")
	cleaned = multiHyphenRegex.ReplaceAllString(cleaned, "-")
	cleaned = multiUnderscoreRegex.ReplaceAllString(cleaned, "_")

	// Runs like "_-_" collapse in stages.
	for i := 0; i < 3; i++ {
		cleaned = mixedSeparatorRegex.ReplaceAllString(cleaned, "_")
		cleaned = multiUnderscoreRegex.ReplaceAllString(cleaned, "_")
	}

	cleaned = leadingRegex.ReplaceAllString(cleaned, "")
	cleaned = trailingRegex.ReplaceAllString(cleaned, "")

	if cleaned == "" {
		cleaned = name
	}

	return cleaned + ext
}

func foldAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if replacement, ok := accentReplacements[r]; ok {
			b.WriteRune(replacement)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
