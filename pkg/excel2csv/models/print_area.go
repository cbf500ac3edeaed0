package models

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int
	// C1 is the start column (1-based).
	C1 int
	// R2 is the end row (1-based, inclusive).
	R2 int
	// C2 is the end column (1-based, inclusive).
	C2 int
}

// ContainsRow reports whether a 1-based row number lies inside the area.
func (a PrintArea) ContainsRow(row int) bool {
	return row >= a.R1 && row <= a.R2
}

// Clip cuts a dense row down to the area's columns, padding short rows.
func (a PrintArea) Clip(row []string) []string {
	clipped := make([]string, a.C2-a.C1+1)
	for i := range clipped {
		if col := a.C1 - 1 + i; col < len(row) {
			clipped[i] = row[col]
		}
	}
	return clipped
}

// Union returns the smallest area covering both a and b.
func (a PrintArea) Union(b PrintArea) PrintArea {
	return PrintArea{
		R1: min(a.R1, b.R1),
		C1: min(a.C1, b.C1),
		R2: max(a.R2, b.R2),
		C2: max(a.C2, b.C2),
	}
}
