package engine

import "strings"

// NormalizeLocation lowercases a free-text location and collapses runs of
// whitespace, so "  Maninagar,  Ahmedabad " and "maninagar, ahmedabad"
// compare equal.
func NormalizeLocation(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}

// isSpecificLocation reports whether a location names an area rather than a
// bare city token. A second word or a comma qualifier ("Maninagar,
// Ahmedabad") counts as specific.
func isSpecificLocation(location string) bool {
	normalized := NormalizeLocation(location)
	if normalized == "" {
		return false
	}
	return strings.Contains(normalized, ",") || len(strings.Fields(normalized)) >= 2
}
