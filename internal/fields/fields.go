package fields

import (
	"regexp"
	"strings"
)

// Separator joins field values inside a note's field blob.
const Separator = "\x1f"

// Split returns the ordered field values of blob. An empty blob yields a
// single empty field, matching how Anki stores a one-field note.
func Split(blob string) []string {
	return strings.Split(blob, Separator)
}

// Join re-inserts the separator between values.
func Join(values []string) string {
	return strings.Join(values, Separator)
}

const markerOpen = "[sound:"

var markerPattern = regexp.MustCompile(`\[sound:([^\]]+)\]`)

// Marker renders the audio reference for filename.
func Marker(filename string) string {
	return markerOpen + filename + "]"
}

// HasMarker reports whether value already references audio. Detection is a
// plain substring check so that a malformed marker still counts as annotated.
func HasMarker(value string) bool {
	return strings.Contains(value, markerOpen)
}

// AppendMarker returns value followed by a space and the marker for filename.
func AppendMarker(value, filename string) string {
	return value + " " + Marker(filename)
}

// ExtractMarker locates the first well-formed marker in value. It returns the
// referenced filename and value with that marker removed and surrounding
// whitespace trimmed. ok is false when no well-formed marker exists.
func ExtractMarker(value string) (filename, stripped string, ok bool) {
	loc := markerPattern.FindStringSubmatchIndex(value)
	if loc == nil {
		return "", value, false
	}
	filename = value[loc[2]:loc[3]]
	marker := value[loc[0]:loc[1]]
	stripped = strings.TrimSpace(strings.ReplaceAll(value, marker, ""))
	return filename, stripped, true
}
