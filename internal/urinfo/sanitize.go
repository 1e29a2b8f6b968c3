package urinfo

import (
	"regexp"
	"strings"
)

// RE2's \s is ASCII only; \v, U+0085 and \p{Z} complete the unicode.IsSpace set.
var whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]{2,}`)

// Sanitize folds newlines into spaces and then collapses every run of two or more
// whitespace characters into a single space.
func Sanitize(raw string) string {
	folded := strings.ReplaceAll(raw, "\n", " ")
	return whitespaceRun.ReplaceAllString(folded, " ")
}
