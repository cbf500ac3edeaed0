// Package models defines data structures for spreadsheet conversion.
package models

// TypeHint is the value category declared by a cell's t attribute.
type TypeHint int

const (
	// TypeNumeric is the default when t is absent or "n".
	TypeNumeric TypeHint = iota
	// TypeSharedString marks a value that indexes the shared string pool (t="s").
	TypeSharedString
	// TypeBoolean marks a 0/1 value (t="b").
	TypeBoolean
	// TypeInlineString marks text stored in the cell's own <is> element (t="inlineStr").
	TypeInlineString
	// TypeFormulaString marks a cached string result of a formula (t="str").
	TypeFormulaString
	// TypeError marks a cached error value such as #DIV/0! (t="e").
	TypeError
	// TypeISODate marks an ISO 8601 date written as text (t="d").
	TypeISODate
	// TypeUnknown is any t value not listed above.
	TypeUnknown
)

// ParseTypeHint maps a t attribute value to its TypeHint.
func ParseTypeHint(t string) TypeHint {
	switch t {
	case "", "n":
		return TypeNumeric
	case "s":
		return TypeSharedString
	case "b":
		return TypeBoolean
	case "inlineStr":
		return TypeInlineString
	case "str":
		return TypeFormulaString
	case "e":
		return TypeError
	case "d":
		return TypeISODate
	default:
		return TypeUnknown
	}
}

// Cell is a single <c> element while it is being streamed.
type Cell struct {
	// Column is the zero-based column index.
	Column int
	// Raw is the accumulated character data of the value element.
	Raw string
	// Type is the declared value category.
	Type TypeHint
	// Style is the cellXfs index from the s attribute.
	Style int
	// HasStyle reports whether the s attribute was present.
	HasStyle bool
}
