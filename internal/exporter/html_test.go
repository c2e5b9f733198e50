package exporter

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/viewed"
)

const doc = `{"categories": {
  "Web Browsers": [
    {"name": "Chrome", "description": "Kyber <hybrid>", "link": "https://chrome?a=1&b=2", "date": "08/15/2023"},
    {"name": "Firefox", "description": "ML-KEM", "link": "https://firefox", "date": "01/01/1970"}
  ],
  "SSH": [
    {"name": "OpenSSH", "description": "sntrup761", "link": "https://openssh"}
  ]
}}`

// tableRow is a parsed <tr> from the body.
type tableRow struct {
	class  string
	style  string
	attrs  map[string]string
	cells  []string
	header string
}

func parseRows(t *testing.T, out string) []tableRow {
	t.Helper()
	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse exported HTML: %v", err)
	}

	var rows []tableRow
	var inBody bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tbody" {
			inBody = true
			defer func() { inBody = false }()
		}
		if inBody && n.Type == html.ElementNode && n.Data == "tr" {
			r := tableRow{attrs: map[string]string{}}
			for _, a := range n.Attr {
				r.attrs[a.Key] = a.Val
			}
			r.class = r.attrs["class"]
			r.style = r.attrs["style"]
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.Data {
				case "th":
					r.header = text(c)
				case "td":
					r.cells = append(r.cells, text(c))
				}
			}
			rows = append(rows, r)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return rows
}

func text(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return b.String()
}

func exportFrame(t *testing.T, expanded bool, viewedLinks ...string) (*Page, *controller.Controller) {
	t.Helper()
	store, err := model.ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	tracker := viewed.New(nil, viewed.Options{})
	if err := tracker.MarkAll(context.Background(), viewedLinks); err != nil {
		t.Fatalf("MarkAll: %v", err)
	}
	page := &Page{Title: "Directory"}
	c := controller.New(controller.Params{
		Store:         store,
		Tracker:       tracker,
		Display:       page,
		StartExpanded: expanded,
	})
	c.Dispatch(context.Background(), controller.Refresh{})
	return page, c
}

func TestExportHTML_RowStructure(t *testing.T) {
	page, _ := exportFrame(t, true)

	rows := parseRows(t, page.HTML())

	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0].class != "category-header" || rows[0].attrs["data-category"] != "web-browsers" {
		t.Errorf("unexpected header row: %+v", rows[0])
	}
	if rows[0].header != "Web Browsers" {
		t.Errorf("expected header text Web Browsers, got %q", rows[0].header)
	}
	if rows[1].class != "category-item web-browsers" {
		t.Errorf("unexpected item class %q", rows[1].class)
	}
	if rows[3].attrs["data-category"] != "ssh" {
		t.Errorf("expected ssh header, got %+v", rows[3])
	}
	for _, r := range rows {
		if r.style != "" {
			t.Errorf("expanded rows must not be hidden: %+v", r)
		}
	}
}

func TestExportHTML_Cells(t *testing.T) {
	page, _ := exportFrame(t, true)

	rows := parseRows(t, page.HTML())

	chrome := rows[1].cells
	want := []string{"Chrome", "Kyber <hybrid>", "https://chrome?a=1&b=2", "08/15/2023"}
	if strings.Join(chrome, "|") != strings.Join(want, "|") {
		t.Errorf("chrome cells = %q, want %q", chrome, want)
	}
	if !strings.Contains(page.HTML(), `<time datetime="2023-08-15">08/15/2023</time>`) {
		t.Error("expected a machine-readable date on Chrome")
	}
	// The epoch sentinel renders an empty date cell.
	if got := rows[2].cells[3]; got != "" {
		t.Errorf("expected empty date for sentinel, got %q", got)
	}
}

func TestExportHTML_CollapsedRowsAreHidden(t *testing.T) {
	page, c := exportFrame(t, false)
	c.Dispatch(context.Background(), controller.ToggleCategory{Key: "ssh"})

	rows := parseRows(t, page.HTML())

	if rows[0].attrs["data-expanded"] != "false" {
		t.Errorf("expected collapsed browsers header")
	}
	for _, r := range rows[1:3] {
		if r.style != "display:none" {
			t.Errorf("expected hidden row, got %+v", r)
		}
	}
	if rows[4].style != "" {
		t.Errorf("expected ssh entry to be shown, got %+v", rows[4])
	}
}

func TestExportHTML_ViewedClass(t *testing.T) {
	page, _ := exportFrame(t, true, "https://openssh")

	rows := parseRows(t, page.HTML())

	if rows[4].class != "category-item ssh viewed" {
		t.Errorf("expected viewed class on OpenSSH, got %q", rows[4].class)
	}
	if strings.Contains(rows[1].class, "viewed") {
		t.Errorf("Chrome should not be viewed")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	page, _ := exportFrame(t, true)

	out := page.HTML()

	if strings.Contains(out, "<hybrid>") {
		t.Error("description should be escaped")
	}
	if !strings.Contains(out, "Kyber &lt;hybrid&gt;") {
		t.Error("expected escaped description")
	}
	if !strings.Contains(out, "a=1&amp;b=2") {
		t.Error("expected escaped ampersand in link")
	}
}

func TestExportHTML_SortMarker(t *testing.T) {
	page, c := exportFrame(t, true)
	c.Dispatch(context.Background(), controller.SortBy{Column: model.ColumnDate})

	out := page.HTML()

	if !strings.Contains(out, `data-column="date" class="sort-asc"`) {
		t.Error("expected ascending marker on the date column")
	}
}

func TestExportHTML_EmptyFrame(t *testing.T) {
	out := ExportHTML(controller.Frame{}, "")

	if !strings.Contains(out, "<title>Directory</title>") {
		t.Error("expected default title")
	}
	if rows := parseRows(t, out); len(rows) != 0 {
		t.Errorf("expected no body rows, got %d", len(rows))
	}
}
