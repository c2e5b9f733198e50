package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/render"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/linkdir-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("linkdir-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// Page is a controller.Display that keeps the last frame so it can be
// written out as a static HTML table.
type Page struct {
	Title string
	frame controller.Frame
}

// Show implements controller.Display.
func (p *Page) Show(f controller.Frame) {
	p.frame = f
}

// HTML renders the last frame shown.
func (p *Page) HTML() string {
	return ExportHTML(p.frame, p.Title)
}

// ExportHTML renders a frame as a standalone HTML table. Collapsed entries are
// written with display:none so the markup holds the whole projection.
func ExportHTML(f controller.Frame, title string) string {
	if title == "" {
		title = "Directory"
	}
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>.viewed a { color: #888; } .category-header { cursor: pointer; }</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
	b.WriteString("<table>\n")

	b.WriteString("    <thead>\n        <tr>\n")
	for _, col := range model.Columns {
		class := ""
		if col == f.Column {
			class = " class=\"sort-desc\""
			if f.Ascending {
				class = " class=\"sort-asc\""
			}
		}
		fmt.Fprintf(&b, "            <th data-column=\"%s\"%s>%s</th>\n", col, class, col.Title())
	}
	b.WriteString("        </tr>\n    </thead>\n")

	b.WriteString("    <tbody>\n")
	for _, row := range f.Rows {
		if row.IsHeader() {
			writeHeader(&b, row)
		} else {
			writeItem(&b, row)
		}
	}
	b.WriteString("    </tbody>\n")

	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

func writeHeader(b *strings.Builder, row render.Row) {
	fmt.Fprintf(b,
		"        <tr class=\"category-header\" data-category=\"%s\" data-expanded=\"%t\"><th colspan=\"%d\">%s</th></tr>\n",
		html.EscapeString(row.Key),
		row.Expanded,
		len(model.Columns),
		html.EscapeString(row.Name),
	)
}

func writeItem(b *strings.Builder, row render.Row) {
	classes := "category-item " + row.Key
	if row.Viewed {
		classes += " viewed"
	}
	style := ""
	if !row.Visible {
		style = " style=\"display:none\""
	}
	link := html.EscapeString(row.Entry.Link)

	fmt.Fprintf(b, "        <tr class=\"%s\"%s>", html.EscapeString(classes), style)
	fmt.Fprintf(b, "<td>%s</td>", html.EscapeString(row.Entry.Name))
	fmt.Fprintf(b, "<td>%s</td>", html.EscapeString(row.Entry.Description))
	fmt.Fprintf(b, "<td><a href=\"%s\" target=\"_blank\">%s</a></td>", link, link)
	writeDate(b, row.Entry.Date)
	b.WriteString("</tr>\n")
}

// writeDate writes the date cell; absent dates leave it empty.
func writeDate(b *strings.Builder, d model.Date) {
	if !d.Present() {
		b.WriteString("<td></td>")
		return
	}
	fmt.Fprintf(b, "<td><time datetime=\"%s\">%s</time></td>", d.Time().Format(time.DateOnly), d.String())
}
