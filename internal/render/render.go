// Package render projects the dataset and view flags into table rows.
//
// Render is a pure function: it reads the store, the view state and the
// viewed set and returns a fresh row list every time. Displays materialize the
// rows; they never patch a previous projection.
package render

import (
	"strings"

	"github.com/nikbrunner/linkdir/internal/model"
)

// RowKind distinguishes category headers from entry rows.
type RowKind int

const (
	KindHeader RowKind = iota
	KindItem
)

// Row is one line of the table.
type Row struct {
	Kind RowKind

	// Key is the category key for both kinds.
	Key string

	// Header fields.
	Name     string // category display name
	Expanded bool
	Count    int // entries shown under this header

	// Item fields.
	Entry   model.Entry
	Visible bool // false when the category is collapsed
	Viewed  bool
}

// IsHeader returns true for category header rows.
func (r Row) IsHeader() bool {
	return r.Kind == KindHeader
}

// Shown reports whether a display should draw the row. Headers always show.
func (r Row) Shown() bool {
	return r.Kind == KindHeader || r.Visible
}

// Viewer answers whether a link has been viewed.
type Viewer interface {
	IsViewed(link string) bool
}

// View is the read side of the view state.
type View interface {
	IsExpanded(key string) bool
	Query() string
}

// Set is a plain Viewer over a set of links.
type Set map[string]struct{}

// IsViewed implements Viewer.
func (s Set) IsViewed(link string) bool {
	_, ok := s[link]
	return ok
}

// Render returns the rows for store as seen through view and viewed.
// With no query every category appears, empty ones included. A category
// whose name matches the query contributes its header and all of its
// entries; otherwise only matching entries, and nothing at all when none
// match.
// Rows of collapsed categories are kept with Visible set to false.
func Render(store *model.Store, view View, viewed Viewer) []Row {
	query := strings.ToLower(view.Query())
	rows := []Row{}

	for _, cat := range store.Categories() {
		entries, included := filterEntries(cat, query)
		if !included {
			continue
		}

		expanded := view.IsExpanded(cat.Key)
		rows = append(rows, Row{
			Kind:     KindHeader,
			Key:      cat.Key,
			Name:     cat.Name,
			Expanded: expanded,
			Count:    len(entries),
		})
		for _, e := range entries {
			rows = append(rows, Row{
				Kind:    KindItem,
				Key:     cat.Key,
				Entry:   e,
				Visible: expanded,
				Viewed:  viewed != nil && viewed.IsViewed(e.Link),
			})
		}
	}
	return rows
}

// Visible returns the rows a display should draw.
func Visible(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Shown() {
			out = append(out, r)
		}
	}
	return out
}

// filterEntries applies the search query to one category and reports
// whether the category belongs in the projection. query must already be
// lowercased.
func filterEntries(cat model.Category, query string) ([]model.Entry, bool) {
	if query == "" || strings.Contains(strings.ToLower(cat.Name), query) {
		return cat.Entries, true
	}
	var out []model.Entry
	for _, e := range cat.Entries {
		if matches(e, query) {
			out = append(out, e)
		}
	}
	return out, len(out) > 0
}

func matches(e model.Entry, query string) bool {
	return strings.Contains(strings.ToLower(e.Name), query) ||
		strings.Contains(strings.ToLower(e.Description), query) ||
		strings.Contains(strings.ToLower(e.Link), query)
}
