package controller

import "github.com/nikbrunner/linkdir/internal/model"

// Action is a user or lifecycle event handled by Dispatch.
type Action interface {
	name() string
}

// ToggleCategory flips one category between expanded and collapsed.
type ToggleCategory struct{ Key string }

// ExpandAll expands every category.
type ExpandAll struct{}

// CollapseAll collapses every category.
type CollapseAll struct{}

// SortBy activates a column header.
type SortBy struct{ Column model.Column }

// Search replaces the search query.
type Search struct{ Query string }

// OpenLink activates an entry link.
type OpenLink struct{ Link string }

// Loaded delivers the dataset once the source fetch succeeds.
type Loaded struct{ Store *model.Store }

// LoadFailed reports that the source could not be fetched or parsed.
type LoadFailed struct{ Err error }

// Refresh re-renders without changing any state.
type Refresh struct{}

func (ToggleCategory) name() string { return "toggle_category" }
func (ExpandAll) name() string      { return "expand_all" }
func (CollapseAll) name() string    { return "collapse_all" }
func (SortBy) name() string         { return "sort_by" }
func (Search) name() string         { return "search" }
func (OpenLink) name() string       { return "open_link" }
func (Loaded) name() string         { return "loaded" }
func (LoadFailed) name() string     { return "load_failed" }
func (Refresh) name() string        { return "refresh" }

// needsStore reports whether a must wait for the dataset.
func needsStore(a Action) bool {
	switch a.(type) {
	case ToggleCategory, ExpandAll, CollapseAll, SortBy:
		return true
	}
	return false
}
