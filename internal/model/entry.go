package model

// Entry is one directory item.
type Entry struct {
	Name        string
	Description string
	Link        string
	Date        Date // absent when the source omits it or uses 01/01/1970
}

// Field returns the text value of the entry for the given column.
// The date column yields "" when the date is absent.
func (e Entry) Field(col Column) string {
	switch col {
	case ColumnName:
		return e.Name
	case ColumnDescription:
		return e.Description
	case ColumnLink:
		return e.Link
	case ColumnDate:
		return e.Date.String()
	}
	return ""
}
