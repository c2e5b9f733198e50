// Package state tracks the view flags of the directory table: which
// categories are expanded, the sort column with its per-column direction,
// and the search query.
package state

import (
	"sort"

	"github.com/nikbrunner/linkdir/internal/model"
)

// ExpandPolicy decides how expanding one category affects the others.
type ExpandPolicy int

const (
	// ExpandMulti lets any number of categories be open at once.
	ExpandMulti ExpandPolicy = iota
	// ExpandSingle collapses every other category when one is expanded.
	ExpandSingle
)

// ParseExpandPolicy maps "multi" / "single" to an ExpandPolicy.
func ParseExpandPolicy(s string) ExpandPolicy {
	if s == "single" {
		return ExpandSingle
	}
	return ExpandMulti
}

// Options configures a ViewState.
type Options struct {
	Expand ExpandPolicy
}

// ViewState holds the UI flags that drive rendering.
type ViewState struct {
	policy    ExpandPolicy
	keys      map[string]bool // valid category keys
	expanded  map[string]bool
	column    model.Column
	ascending map[model.Column]bool
	query     string
}

// New creates a ViewState sorted by name, ascending, with nothing expanded.
func New(opts Options) *ViewState {
	asc := make(map[model.Column]bool, len(model.Columns))
	for _, c := range model.Columns {
		asc[c] = true
	}
	return &ViewState{
		policy:    opts.Expand,
		keys:      make(map[string]bool),
		expanded:  make(map[string]bool),
		column:    model.ColumnName,
		ascending: asc,
	}
}

// SetKeys records the category keys that currently exist and drops any
// expanded key that is no longer among them.
func (v *ViewState) SetKeys(keys []string) {
	v.keys = make(map[string]bool, len(keys))
	for _, k := range keys {
		v.keys[k] = true
	}
	for k := range v.expanded {
		if !v.keys[k] {
			delete(v.expanded, k)
		}
	}
}

// ToggleCategory flips the expanded state of key.
// Returns false if key is not a known category.
func (v *ViewState) ToggleCategory(key string) bool {
	if !v.keys[key] {
		return false
	}
	if v.expanded[key] {
		delete(v.expanded, key)
		return true
	}
	if v.policy == ExpandSingle {
		v.expanded = make(map[string]bool)
	}
	v.expanded[key] = true
	return true
}

// ExpandAll expands every known category.
func (v *ViewState) ExpandAll() {
	v.expanded = make(map[string]bool, len(v.keys))
	for k := range v.keys {
		v.expanded[k] = true
	}
}

// CollapseAll collapses every category.
func (v *ViewState) CollapseAll() {
	v.expanded = make(map[string]bool)
}

// IsExpanded returns true if key is expanded.
func (v *ViewState) IsExpanded(key string) bool {
	return v.expanded[key]
}

// Expanded returns the expanded keys, sorted.
func (v *ViewState) Expanded() []string {
	out := make([]string, 0, len(v.expanded))
	for k := range v.expanded {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetSort selects col. Selecting the current column flips its direction;
// switching columns reuses the direction last used for the new column.
func (v *ViewState) SetSort(col model.Column) {
	if col == v.column {
		v.ascending[col] = !v.ascending[col]
		return
	}
	v.column = col
}

// Sort returns the current column and its direction.
func (v *ViewState) Sort() (model.Column, bool) {
	return v.column, v.ascending[v.column]
}

// Ascending returns the remembered direction for col.
func (v *ViewState) Ascending(col model.Column) bool {
	return v.ascending[col]
}

// SetSearch replaces the query. An empty query disables filtering.
func (v *ViewState) SetSearch(query string) {
	v.query = query
}

// Query returns the current search query.
func (v *ViewState) Query() string {
	return v.query
}
