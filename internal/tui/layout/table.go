package layout

// ColumnWidths holds the width of each table column.
type ColumnWidths struct {
	Name        int
	Description int
	Link        int
	Date        int
}

// CalculateTableHeight computes how many rows fit on screen.
// Returns at least MinHeight.
func CalculateTableHeight(terminalHeight int, cfg TableConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateColumnWidths splits the terminal width between the columns. The
// date column is fixed, the text columns share the rest by weight.
func CalculateColumnWidths(terminalWidth int, cfg TableConfig) ColumnWidths {
	available := terminalWidth - cfg.HorizontalPadding - cfg.Indent - 3*cfg.Gutter - cfg.DateWidth
	if available < 0 {
		available = 0
	}

	total := cfg.NameWeight + cfg.DescriptionWeight + cfg.LinkWeight
	if total <= 0 {
		total = 1
	}

	name := available * cfg.NameWeight / total
	desc := available * cfg.DescriptionWeight / total
	link := available - name - desc

	return ColumnWidths{
		Name:        max(name, cfg.MinColumnWidth),
		Description: max(desc, cfg.MinColumnWidth),
		Link:        max(link, cfg.MinColumnWidth),
		Date:        cfg.DateWidth,
	}
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
