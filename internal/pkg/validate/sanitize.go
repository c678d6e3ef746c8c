// internal/pkg/validate/sanitize.go
package validate

import (
	"regexp"
	"strings"
)

// MaxTextLength caps every free-text field before validation and storage.
const MaxTextLength = 500

// Sanitize trims surrounding whitespace and truncates to MaxTextLength
// runes. Empty or absent input yields an empty string.
func Sanitize(text string) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) > MaxTextLength {
		return string(runes[:MaxTextLength])
	}
	return trimmed
}

// EscapeSearch quotes every regex metacharacter in a user-supplied search
// term so it can only match as a literal substring. This neutralizes both
// filter injection and catastrophic-backtracking payloads such as nested
// quantifiers.
func EscapeSearch(term string) string {
	return regexp.QuoteMeta(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes the SQL LIKE/ILIKE wildcards in a search term.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
