package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Table TableConfig
	Input InputConfig
	Text  TextConfig
}

// TableConfig holds table dimension configuration.
type TableConfig struct {
	// HeightReduction is subtracted from terminal height for table rows.
	// Accounts for: app padding (1) + title (1) + column header (1) + search line (1) + help bar (2) = 6
	HeightReduction int

	// MinHeight is the minimum number of table rows.
	MinHeight int

	// HorizontalPadding is the app padding on both sides.
	HorizontalPadding int

	// Indent is the left margin of entry rows below their category header.
	Indent int

	// Gutter is the space between two columns.
	Gutter int

	// DateWidth fits a MM/DD/YYYY date.
	DateWidth int

	// Relative weights for splitting the remaining width between the text columns.
	NameWeight        int
	DescriptionWeight int
	LinkWeight        int

	// MinColumnWidth is the minimum width of each text column.
	MinColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Table: TableConfig{
			HeightReduction:   6, // app padding (1) + title (1) + column header (1) + search line (1) + help bar (2)
			MinHeight:         3,
			HorizontalPadding: 4,
			Indent:            2,
			Gutter:            2,
			DateWidth:         10,
			NameWeight:        3,
			DescriptionWeight: 5,
			LinkWeight:        4,
			MinColumnWidth:    8,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
