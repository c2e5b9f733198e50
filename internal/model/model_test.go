package model_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/linkdir/internal/model"
)

const sampleDoc = `{
  "categories": {
    "Web Browsers": [
      {"name": "Chrome", "description": "Hybrid Kyber KEM", "link": "https://c", "date": "08/15/2023"},
      {"name": "firefox", "description": "ML-KEM", "link": "https://f", "date": "01/01/1970"},
      {"name": "Brave", "description": "", "link": "https://b"}
    ],
    "SSH": [
      {"name": "OpenSSH", "description": "sntrup761x25519", "link": "https://o", "date": "04/08/2022"}
    ],
    "Alpha Libraries": []
  }
}`

func mustParse(t *testing.T, doc string) *model.Store {
	t.Helper()
	store, err := model.ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return store
}

func names(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Browsers", "browsers"},
		{"Web Browsers", "web-browsers"},
		{"  VPN   and\tTunnels ", "vpn-and-tunnels"},
		{"TLS-Libraries", "tls-libraries"},
	}
	for _, tt := range tests {
		if got := model.NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDocument_PreservesCategoryOrder(t *testing.T) {
	store := mustParse(t, sampleDoc)

	want := []string{"web-browsers", "ssh", "alpha-libraries"}
	got := store.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	cat := store.Category("web-browsers")
	if cat == nil {
		t.Fatal("expected web-browsers category")
	}
	if cat.Name != "Web Browsers" {
		t.Errorf("display name = %q, want %q", cat.Name, "Web Browsers")
	}
	if len(cat.Entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(cat.Entries))
	}
	if store.EntryCount() != 4 {
		t.Errorf("expected 4 entries total, got %d", store.EntryCount())
	}
}

func TestParseDocument_SentinelDateIsAbsent(t *testing.T) {
	store := mustParse(t, sampleDoc)
	entries := store.Category("web-browsers").Entries

	if !entries[0].Date.Present() || entries[0].Date.String() != "08/15/2023" {
		t.Errorf("Chrome date = %q, want 08/15/2023", entries[0].Date.String())
	}
	if entries[1].Date.Present() {
		t.Error("01/01/1970 must be treated as absent")
	}
	if entries[1].Date.String() != "" {
		t.Errorf("sentinel date should render empty, got %q", entries[1].Date.String())
	}
	if entries[2].Date.Present() {
		t.Error("missing date must be absent")
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array at top level", `[]`},
		{"string at top level", `"x"`},
		{"category is not an array", `{"A": {"name": "x"}}`},
		{"entry is not an object", `{"A": ["x"]}`},
		{"missing name", `{"A": [{"description": "d", "link": "l"}]}`},
		{"missing description", `{"A": [{"name": "n", "link": "l"}]}`},
		{"missing link", `{"A": [{"name": "n", "description": "d"}]}`},
		{"null link", `{"A": [{"name": "n", "description": "d", "link": null}]}`},
		{"numeric name", `{"A": [{"name": 1, "description": "d", "link": "l"}]}`},
		{"duplicate key", `{"Web Tools": [], "web   tools": []}`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.Load([]byte(tt.raw))
			var malformed *model.MalformedDataError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedDataError, got %v", err)
			}
		})
	}
}

func TestParseDocument_MissingCategories(t *testing.T) {
	_, err := model.ParseDocument([]byte(`{"services": {}}`))
	var malformed *model.MalformedDataError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDataError, got %v", err)
	}
}

func TestLoad_UnparsableDateIsDropped(t *testing.T) {
	store, err := model.Load([]byte(`{"A": [{"name": "n", "description": "d", "link": "l", "date": "2023-08-15"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Categories()[0].Entries[0].Date.Present() {
		t.Error("expected unparsable date to be absent")
	}
}

func TestStore_SortBy_Name(t *testing.T) {
	store := mustParse(t, sampleDoc)

	store.SortBy(model.ColumnName, true)
	got := names(store.Category("web-browsers").Entries)
	want := []string{"Brave", "Chrome", "firefox"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ascending = %v, want %v", got, want)
	}

	store.SortBy(model.ColumnName, false)
	got = names(store.Category("web-browsers").Entries)
	want = []string{"firefox", "Chrome", "Brave"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("descending = %v, want %v", got, want)
	}

	// Categories keep their relative order.
	if strings.Join(store.Keys(), ",") != "web-browsers,ssh,alpha-libraries" {
		t.Errorf("category order changed: %v", store.Keys())
	}
}

func TestStore_SortBy_DateAbsentSortsAsEmpty(t *testing.T) {
	store := model.NewStore()
	store.Add("Dates",
		model.Entry{Name: "late", Link: "l1", Date: model.NewDate(2024, time.March, 1)},
		model.Entry{Name: "none", Link: "l2"},
		model.Entry{Name: "early", Link: "l3", Date: model.NewDate(2019, time.December, 31)},
		model.Entry{Name: "epoch", Link: "l4", Date: model.NewDate(1970, time.January, 1)},
		// Lexicographically "02/..." < "12/..." but the calendar order wins.
		model.Entry{Name: "mid", Link: "l5", Date: model.NewDate(2021, time.February, 10)},
	)

	store.SortBy(model.ColumnDate, true)
	got := names(store.Categories()[0].Entries)
	want := []string{"none", "epoch", "early", "mid", "late"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ascending = %v, want %v", got, want)
	}

	store.SortBy(model.ColumnDate, false)
	got = names(store.Categories()[0].Entries)
	want = []string{"late", "mid", "early", "none", "epoch"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("descending = %v, want %v", got, want)
	}
}

func TestStore_SortBy_StableAndPermutation(t *testing.T) {
	store := model.NewStore()
	store.Add("Tools",
		model.Entry{Name: "b", Description: "same", Link: "1"},
		model.Entry{Name: "a", Description: "same", Link: "2"},
		model.Entry{Name: "c", Description: "other", Link: "3"},
		model.Entry{Name: "a", Description: "SAME", Link: "4"},
	)

	store.SortBy(model.ColumnName, true)
	// Ties on description keep the name order established above.
	store.SortBy(model.ColumnDescription, true)

	var links []string
	for _, e := range store.Categories()[0].Entries {
		links = append(links, e.Link)
	}
	want := []string{"3", "2", "4", "1"}
	if strings.Join(links, ",") != strings.Join(want, ",") {
		t.Errorf("links = %v, want %v", links, want)
	}

	seen := make(map[string]int)
	for _, col := range model.Columns {
		store.SortBy(col, false)
		store.SortBy(col, true)
	}
	for _, e := range store.Categories()[0].Entries {
		seen[e.Link]++
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct entries after sorting, got %d", len(seen))
	}
	for link, n := range seen {
		if n != 1 {
			t.Errorf("entry %s appears %d times", link, n)
		}
	}
}

func TestStore_MarshalJSON_RoundTripKeepsOrder(t *testing.T) {
	store := mustParse(t, sampleDoc)

	data, err := store.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	again, err := model.ParseDocument(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if strings.Join(again.Keys(), ",") != strings.Join(store.Keys(), ",") {
		t.Errorf("order lost: %v vs %v", again.Keys(), store.Keys())
	}
	if strings.Contains(string(data), "01/01/1970") {
		t.Error("sentinel date should not be written back")
	}
}

func TestParseColumn(t *testing.T) {
	for _, col := range model.Columns {
		got, err := model.ParseColumn(col.String())
		if err != nil || got != col {
			t.Errorf("ParseColumn(%q) = %v, %v", col.String(), got, err)
		}
	}
	if _, err := model.ParseColumn("size"); err == nil {
		t.Error("expected error for unknown column")
	}
}
