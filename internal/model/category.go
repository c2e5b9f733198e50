package model

import "strings"

// Category is a named group of entries.
type Category struct {
	Key     string // normalized name, stable identifier in UI state
	Name    string // display name as it appears in the source
	Entries []Entry
}

// NormalizeKey lowercases name and replaces every run of whitespace with a
// single hyphen.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
