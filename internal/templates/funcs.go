package templates

import (
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// NameNorm strips every character that is not an ASCII letter or digit.
func NameNorm(s string) string {
	return nonAlphanumeric.ReplaceAllString(s, "")
}

var titleCaser = cases.Title(language.English)

// Title turns an identifier such as "general_purpose" into "General Purpose".
func Title(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return titleCaser.String(strings.Join(strings.Fields(s), " "))
}

// Funcs returns the helpers available inside every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"name_norm": NameNorm,
		"title":     Title,
	}
}
