// Package legacy adapts readers of the pre-XML binary spreadsheet format to
// the row-oriented conversion pipeline.
package legacy

import (
	"errors"
	"io"
)

// ErrNoSheet indicates a sheet index that the book does not contain.
var ErrNoSheet = errors.New("no such sheet")

// Kind is the value category of a legacy cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindBoolean
	KindNumber
	KindDate
	KindText
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	case KindError:
		return "error"
	default:
		return "empty"
	}
}

// Cell is a typed legacy cell value.
type Cell struct {
	Kind Kind
	// Text holds text and error values.
	Text string
	// Number holds numbers and date serials.
	Number float64
	Bool   bool
}

// Book is an opened legacy workbook.
type Book interface {
	io.Closer
	SheetNames() []string
	SheetByIndex(i int) (Sheet, error)
}

// Sheet is one worksheet of a legacy workbook.
type Sheet interface {
	Name() string
	NRows() int
	NCols() int
	// Cell returns the cell at zero-based coordinates; out of range is KindEmpty.
	Cell(row, col int) Cell
}
