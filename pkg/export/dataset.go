package export

// Dataset is a report ready for rendering: a title, ordered columns
// and one cell map per row. Cells missing from a row render empty.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
}

// record projects a row onto the column order.
func (d Dataset) record(row map[string]string) []string {
	cells := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		cells[i] = row[header]
	}
	return cells
}
