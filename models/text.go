package models

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// boilerplate is the trailing call-to-action the CMS appends to descriptions.
// The longer form has to be removed first.
var boilerplate = []string{
	"لمزيد من التفاصيل :",
	"لمزيد من التفاصيل",
}

func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func CleanDescription(s string) string {
	for _, phrase := range boilerplate {
		s = strings.ReplaceAll(s, phrase, "")
	}
	return s
}

// PlainText renders a description as text: boilerplate removed, tags
// stripped, entities decoded and whitespace collapsed.
func PlainText(s string) string {
	s = html.UnescapeString(StripTags(CleanDescription(s)))
	return strings.Join(strings.Fields(s), " ")
}

// Summary returns at most n runes of the description's plain text.
func Summary(s string, n int) string {
	r := []rune(PlainText(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n]))
}
