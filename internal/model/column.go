package model

import "fmt"

// Column identifies a sortable table column.
type Column int

const (
	ColumnName Column = iota
	ColumnDescription
	ColumnLink
	ColumnDate
)

// Columns lists every column in table order.
var Columns = []Column{ColumnName, ColumnDescription, ColumnLink, ColumnDate}

// String returns the column's field name.
func (c Column) String() string {
	switch c {
	case ColumnName:
		return "name"
	case ColumnDescription:
		return "description"
	case ColumnLink:
		return "link"
	case ColumnDate:
		return "date"
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// Title returns the column header label.
func (c Column) Title() string {
	switch c {
	case ColumnName:
		return "Name"
	case ColumnDescription:
		return "Description"
	case ColumnLink:
		return "Link"
	case ColumnDate:
		return "Date"
	}
	return c.String()
}

// ParseColumn maps a field name to its Column.
func ParseColumn(s string) (Column, error) {
	for _, c := range Columns {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", s)
}
