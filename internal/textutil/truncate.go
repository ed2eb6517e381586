package textutil

import "strings"

const ellipsis = "..."

// Truncate shortens value to at most limit runes and appends "..." when it
// cut anything. A non-positive limit returns value unchanged.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return value
	}
	count := 0
	for i := range value {
		if count == limit {
			return value[:i] + ellipsis
		}
		count++
	}
	return value
}

var flattenReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\t", " ",
	"\x1f", " | ",
)

// OneLine replaces line breaks, tabs, and field separators so value renders
// on a single table row.
func OneLine(value string) string {
	return flattenReplacer.Replace(value)
}
