package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// requiredFields must be present on every entry object.
var requiredFields = []string{"name", "description", "link"}

// ParseDocument decodes a {"categories": {...}} document into a Store.
func ParseDocument(data []byte) (*Store, error) {
	var doc struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformed("", "document is not a JSON object", err)
	}
	if len(doc.Categories) == 0 || string(doc.Categories) == "null" {
		return nil, malformed("", `missing "categories" field`, nil)
	}
	return Load(doc.Categories)
}

// Load parses a raw category map (category name -> array of entries) into a
// Store, keeping categories in the order they appear in raw.
func Load(raw []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("categories", "expected an object", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, malformed("categories", "expected an object", nil)
	}

	store := NewStore()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed("categories", "unreadable category name", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, malformed("categories", "category name is not a string", nil)
		}
		path := fmt.Sprintf("categories[%q]", name)

		var items []json.RawMessage
		if err := dec.Decode(&items); err != nil {
			return nil, malformed(path, "expected an array of entries", err)
		}
		if items == nil {
			return nil, malformed(path, "expected an array of entries", nil)
		}

		if store.Category(NormalizeKey(name)) != nil {
			return nil, malformed(path, fmt.Sprintf("duplicate category key %q", NormalizeKey(name)), nil)
		}

		entries := make([]Entry, 0, len(items))
		for i, item := range items {
			entry, err := parseEntry(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		store.Add(name, entries...)
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("categories", "unterminated object", err)
	}
	return store, nil
}

func parseEntry(raw json.RawMessage, path string) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entry{}, malformed(path, "entry is not an object", err)
	}

	values := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		v, ok := fields[name]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return Entry{}, malformed(path, fmt.Sprintf("missing %q", name), nil)
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return Entry{}, malformed(path, fmt.Sprintf("%q is not a string", name), err)
		}
		values[name] = s
	}

	entry := Entry{
		Name:        values["name"],
		Description: values["description"],
		Link:        values["link"],
	}

	// An unusable date is dropped rather than rejecting the whole document.
	if v, ok := fields["date"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			if d, err := ParseDate(s); err == nil {
				entry.Date = d
			}
		}
	}
	return entry, nil
}
