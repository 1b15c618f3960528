package domain

// Column describes one spreadsheet column: its header text, the row key it
// reads, and its display width in characters.
type Column struct {
	Header string
	Key    string
	Width  float64
}

// Sheet is a fully formatted table ready for a spreadsheet writer.
// Row values are already derived and formatted: dates as "2006-01-02"
// strings, numbers as float64, and missing values as nil.
type Sheet struct {
	Name     string
	Filename string
	Columns  []Column
	Rows     []map[string]any
}
