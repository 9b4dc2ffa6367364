package services

import "strings"

// Normalize lowercases and trims a book title or novelist name before it
// reaches the store. Filters on those fields go through the same function so
// lookups stay case-insensitive.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
