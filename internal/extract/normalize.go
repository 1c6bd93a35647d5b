package extract

import (
	"regexp"
	"strings"
)

// Cross-carrier navigation and consent boilerplate that survives into the
// rendered page text and would otherwise pollute pattern captures. Matched
// case-insensitively in both page languages.
var boilerplatePhrases = []string{
	"Skip to main content",
	"Skip to content",
	"Saltar al contenido principal",
	"Saltar al contenido",
	"Ir al contenido principal",
	"Accept all cookies",
	"Aceptar todas las cookies",
}

var (
	boilerplateRE = compileBoilerplate(boilerplatePhrases)
	hspaceRE      = regexp.MustCompile(`[ \t]+`)
)

func compileBoilerplate(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		for i, word := range words {
			words[i] = regexp.QuoteMeta(word)
		}
		// Stripping runs before whitespace collapse, so a phrase with ragged
		// spacing must still match on the first pass.
		out = append(out, regexp.MustCompile(`(?i)`+strings.Join(words, `[ \t]+`)))
	}
	return out
}

// Normalize converts raw page text into the canonical form the extraction
// rules are written against: non-breaking spaces become ordinary spaces, runs
// of horizontal whitespace collapse to a single space, known boilerplate
// phrases are removed and line edges are trimmed. Line breaks are preserved
// because several rules anchor to line starts. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.NewReplacer(
		"\u00a0", " ",
		"\u202f", " ",
		"\r\n", "\n",
		"\r", "\n",
	).Replace(raw)

	for _, re := range boilerplateRE {
		s = re.ReplaceAllString(s, " ")
	}
	s = hspaceRE.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// IsBoilerplate reports whether a captured span is itself one of the stripped
// boilerplate phrases. Rules re-check captures against this after matching.
func IsBoilerplate(span string) bool {
	trimmed := strings.TrimSpace(span)
	if trimmed == "" {
		return false
	}
	for _, phrase := range boilerplatePhrases {
		if strings.EqualFold(trimmed, phrase) {
			return true
		}
	}
	return false
}
