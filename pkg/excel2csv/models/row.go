package models

// Row is a sparse row collected from a worksheet stream.
type Row struct {
	// Number is the 1-based row number.
	Number int
	// Cells maps zero-based column index to resolved value.
	Cells map[int]string
	// SpanEnd is the largest 1-based column named by the spans attribute (0 if absent).
	SpanEnd int
}

// NewRow creates an empty row with the given number.
func NewRow(number int) *Row {
	return &Row{
		Number: number,
		Cells:  make(map[int]string),
	}
}

// Set stores a value at a column index.
func (r *Row) Set(column int, value string) {
	r.Cells[column] = value
}

// Width returns the dense length of the row.
func (r *Row) Width() int {
	width := 0
	for col := range r.Cells {
		if col+1 > width {
			width = col + 1
		}
	}
	if r.SpanEnd > width {
		width = r.SpanEnd
	}
	return width
}

// Dense materializes the row with empty strings in missing slots.
func (r *Row) Dense() []string {
	dense := make([]string, r.Width())
	for col, value := range r.Cells {
		dense[col] = value
	}
	return dense
}

// IsBlank reports whether every slot of a dense row is empty.
func IsBlank(row []string) bool {
	for _, value := range row {
		if value != "" {
			return false
		}
	}
	return true
}
