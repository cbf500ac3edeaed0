package models

// StyleTable holds the parts of the style sheet that decide value semantics.
type StyleTable struct {
	// NumFmts maps custom numFmtId to its normalized format code.
	NumFmts map[int]string
	// CellXfs maps style index (position) to numFmtId.
	CellXfs []int
}

// NewStyleTable returns an empty style table.
func NewStyleTable() *StyleTable {
	return &StyleTable{NumFmts: make(map[int]string)}
}

// SharedStrings is the shared string pool indexed by position.
type SharedStrings []string

// Lookup returns the string at index i.
func (s SharedStrings) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(s) {
		return "", false
	}
	return s[i], true
}
