// Package subject extracts and normalizes the name of the entity being
// researched from free-form user text.
package subject

import (
	"regexp"
	"strings"
)

// Anchored phrase patterns tried in order; the first capture wins.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bresearch\s+([A-Za-z0-9][\w&.\- ]*)`),
	regexp.MustCompile(`(?i)\blook\s+(?:up|into)\s+([A-Za-z0-9][\w&.\- ]*)`),
	regexp.MustCompile(`(?i)\binformation\s+(?:on|about)\s+([A-Za-z0-9][\w&.\- ]*)`),
	regexp.MustCompile(`(?i)\btell\s+me\s+about\s+([A-Za-z0-9][\w&.\- ]*)`),
	regexp.MustCompile(`(?i)\bplan\s+for\s+([A-Za-z0-9][\w&.\- ]*)`),
}

// bareNamePattern matches input that is nothing but a name
var bareNamePattern = regexp.MustCompile(`^[A-Za-z0-9][\w&.\- ]*$`)

// trailingQualifiers are dropped from the end of a captured name
var trailingQualifiers = map[string]bool{
	"company":     true,
	"corp":        true,
	"corporation": true,
	"inc":         true,
	"ltd":         true,
	"llc":         true,
}

// fillerPhrases are stripped from lowercased text in the fallback
// phase. Longer phrases come first so substrings don't shadow them.
var fillerPhrases = []string{
	"i want to know about",
	"can you research",
	"please research",
	"information about",
	"information on",
	"tell me about",
	"search for",
	"look into",
	"look up",
	"research",
	"find",
}

// Normalize collapses runs of whitespace and title-cases each word.
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	lower := strings.ToLower(w)
	r := []rune(lower)
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// Extract pulls a subject name from free text. It first tries the
// anchored phrase patterns, then falls back to stripping filler
// phrases from the whole input. An empty result means the caller must
// ask for clarification; it is never a valid subject.
func Extract(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	for _, pattern := range extractPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if name := Normalize(dropQualifiers(m[1])); name != "" {
				return name
			}
		}
	}

	clean := strings.ToLower(text)
	for _, phrase := range fillerPhrases {
		clean = strings.ReplaceAll(clean, phrase, " ")
	}
	return Normalize(dropQualifiers(clean))
}

// Matches reports whether text looks like a subject mention: either an
// anchored phrase or a bare name with no sentence punctuation.
func Matches(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, pattern := range extractPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return bareNamePattern.MatchString(text)
}

func dropQualifiers(name string) string {
	words := strings.Fields(name)
	for len(words) > 1 && trailingQualifiers[strings.ToLower(strings.Trim(words[len(words)-1], "."))] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
