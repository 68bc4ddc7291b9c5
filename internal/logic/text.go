package logic

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// DescriptionLimit is the default rune budget for a listed description
const DescriptionLimit = 300

var stripPolicy = bluemonday.StrictPolicy()

// CleanDescription turns scraped description text into a single plain line:
// markup removed, entities decoded, whitespace collapsed, cut to max runes
// with a trailing "..." (max <= 0 disables the cut).
func CleanDescription(s string, max int) string {
	plain := html.UnescapeString(stripPolicy.Sanitize(s))
	plain = strings.Join(strings.Fields(plain), " ")

	if max <= 0 || utf8.RuneCountInString(plain) <= max {
		return plain
	}
	if max <= 3 {
		return string([]rune(plain)[:max])
	}
	return strings.TrimRight(string([]rune(plain)[:max-3]), " ") + "..."
}
