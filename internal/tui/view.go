package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/render"
	"github.com/nikbrunner/linkdir/internal/tui/layout"
)

// renderView creates the complete table view.
func (a App) renderView() string {
	widths := layout.CalculateColumnWidths(a.width, a.layoutCfg.Table)
	height := layout.CalculateTableHeight(a.height, a.layoutCfg.Table)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderTitle(),
			a.renderSearchLine(),
			a.renderColumnHeader(widths),
			a.renderTable(widths, height),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderTitle renders the app name and dataset counts.
func (a App) renderTitle() string {
	title := a.styles.Title.Render("linkdir")
	store := a.ctrl.Store()
	if store == nil {
		return title
	}
	counts := fmt.Sprintf("  %d categories · %d entries · %d viewed",
		store.Len(), store.EntryCount(), a.ctrl.Tracker().Len())
	return title + a.styles.Empty.Render(counts)
}

// renderSearchLine shows the search input while typing, the active filter
// otherwise.
func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.searchInput.View()
	}
	if q := a.Frame().Query; q != "" {
		return a.styles.Search.Render("/ " + q)
	}
	return ""
}

// renderColumnHeader renders the column titles with the sort indicator.
func (a App) renderColumnHeader(widths layout.ColumnWidths) string {
	frame := a.Frame()
	cells := make([]string, len(model.Columns))
	for i, col := range model.Columns {
		title := col.Title()
		if col == frame.Column {
			if frame.Ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		cells[i] = layout.FitCell(title, columnWidth(widths, col), a.layoutCfg.Text)
	}
	line := strings.Repeat(" ", a.layoutCfg.Table.Indent) + a.joinCells(cells)
	return a.styles.ColumnHeader.Render(line)
}

// renderTable renders the rows that fit in height, scrolled to the cursor.
func (a App) renderTable(widths layout.ColumnWidths, height int) string {
	frame := a.Frame()
	rows := a.Rows()

	if len(rows) == 0 {
		return a.renderEmpty(height)
	}

	offset := layout.CalculateViewportOffset(a.cursor, len(rows), height)
	end := min(offset+height, len(rows))

	lines := make([]string, 0, height)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderRow(rows[i], i == a.cursor, widths))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	if frame.Err != nil {
		lines[len(lines)-1] = a.styles.Error.Render("✗ " + frame.Err.Error())
	}
	return strings.Join(lines, "\n")
}

func (a App) renderEmpty(height int) string {
	frame := a.Frame()
	var msg string
	switch {
	case frame.Loading:
		msg = a.styles.Empty.Render("Loading directory...")
	case frame.Err != nil:
		msg = a.styles.Error.Render("✗ Directory unavailable: " + frame.Err.Error())
	case frame.Query != "":
		msg = a.styles.Empty.Render(fmt.Sprintf("No entries match %q", frame.Query))
	default:
		msg = a.styles.Empty.Render("Directory is empty")
	}

	lines := make([]string, height)
	lines[0] = msg
	return strings.Join(lines, "\n")
}

// renderRow renders a category header or an entry line.
func (a App) renderRow(row render.Row, selected bool, widths layout.ColumnWidths) string {
	cfg := a.layoutCfg

	if row.IsHeader() {
		marker := "▸"
		if row.Expanded {
			marker = "▾"
		}
		total := cfg.Table.Indent + widths.Name + widths.Description + widths.Link + widths.Date + 3*cfg.Table.Gutter
		text := layout.FitCell(fmt.Sprintf("%s %s (%d)", marker, row.Name, row.Count), total, cfg.Text)
		if selected {
			return a.styles.Selected.Bold(true).Render(text)
		}
		return a.styles.Category.Render(text)
	}

	e := row.Entry
	cells := []string{
		layout.FitCell(e.Name, widths.Name, cfg.Text),
		layout.FitCell(e.Description, widths.Description, cfg.Text),
		layout.FitCell(e.Link, widths.Link, cfg.Text),
		layout.FitCell(e.Date.String(), widths.Date, cfg.Text),
	}
	line := strings.Repeat(" ", cfg.Table.Indent) + a.joinCells(cells)

	switch {
	case selected:
		return a.styles.Selected.Render(line)
	case row.Viewed:
		return a.styles.Viewed.Render(line)
	default:
		return a.styles.Item.Render(line)
	}
}

func (a App) joinCells(cells []string) string {
	return strings.Join(cells, strings.Repeat(" ", a.layoutCfg.Table.Gutter))
}

func columnWidth(w layout.ColumnWidths, col model.Column) int {
	switch col {
	case model.ColumnDescription:
		return w.Description
	case model.ColumnLink:
		return w.Link
	case model.ColumnDate:
		return w.Date
	default:
		return w.Name
	}
}

// renderHelpBar renders the status message line and the key hints.
func (a App) renderHelpBar() string {
	message := ""
	if a.messageText != "" {
		message = a.renderMessageLine()
	}
	return message + "\n" + a.renderHints(a.getContextualHints())
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Title.Render(a.messageText)
	}
}
