package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Store holds the grouped dataset in source order.
type Store struct {
	categories []Category
	index      map[string]int // key -> position in categories
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		categories: []Category{},
		index:      make(map[string]int),
	}
}

// Add appends entries to the category with the given display name, creating
// it at the end when its key is new.
func (s *Store) Add(name string, entries ...Entry) {
	key := NormalizeKey(name)
	if i, ok := s.index[key]; ok {
		s.categories[i].Entries = append(s.categories[i].Entries, entries...)
		return
	}
	s.index[key] = len(s.categories)
	s.categories = append(s.categories, Category{
		Key:     key,
		Name:    name,
		Entries: append([]Entry{}, entries...),
	})
}

// Categories returns the categories in source order.
// The slice is shared with the store and must not be modified.
func (s *Store) Categories() []Category {
	if s == nil {
		return nil
	}
	return s.categories
}

// Category finds a category by key, returns nil if not found.
func (s *Store) Category(key string) *Category {
	if s == nil {
		return nil
	}
	i, ok := s.index[key]
	if !ok {
		return nil
	}
	return &s.categories[i]
}

// Keys returns every category key in source order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.categories))
	for i, c := range s.categories {
		keys[i] = c.Key
	}
	return keys
}

// Len returns the number of categories.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.categories)
}

// EntryCount returns the number of entries across all categories.
func (s *Store) EntryCount() int {
	n := 0
	for _, c := range s.Categories() {
		n += len(c.Entries)
	}
	return n
}

// SortBy stably reorders the entries of every category by col.
// Categories keep their relative order.
func (s *Store) SortBy(col Column, ascending bool) {
	if s == nil {
		return
	}
	for i := range s.categories {
		entries := s.categories[i].Entries
		sort.SliceStable(entries, func(a, b int) bool {
			c := compareEntries(entries[a], entries[b], col)
			if ascending {
				return c < 0
			}
			return c > 0
		})
	}
}

// compareEntries compares two dated entries as calendar dates on the date
// column. Everything else, including a date column where either side has no
// date, compares the lowercased field text, so absent values act as "".
func compareEntries(a, b Entry, col Column) int {
	if col == ColumnDate && a.Date.Present() && b.Date.Present() {
		return a.Date.Compare(b.Date)
	}
	return strings.Compare(strings.ToLower(a.Field(col)), strings.ToLower(b.Field(col)))
}

type entryJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Date        string `json:"date,omitempty"`
}

// MarshalJSON writes the store as a {"categories": {...}} document,
// preserving category order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"categories":{`)
	for i, c := range s.Categories() {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		items := make([]entryJSON, len(c.Entries))
		for j, e := range c.Entries {
			items[j] = entryJSON{
				Name:        e.Name,
				Description: e.Description,
				Link:        e.Link,
				Date:        e.Date.String(),
			}
		}
		list, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("encode category %q: %w", c.Name, err)
		}
		b.Write(name)
		b.WriteByte(':')
		b.Write(list)
	}
	b.WriteString(`}}`)
	return b.Bytes(), nil
}
