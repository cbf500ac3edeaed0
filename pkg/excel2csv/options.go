// Package excel2csv converts spreadsheet workbooks into CSV rows.
package excel2csv

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Selection names the sheets to convert. The zero value selects every sheet.
type Selection struct {
	// ID selects the sheet whose descriptor id matches (1-based).
	ID int
	// Name selects the sheet with this exact name.
	Name string
}

// IsAll reports whether the selection covers every sheet.
func (s Selection) IsAll() bool {
	return s.ID <= 0 && s.Name == ""
}

func (s Selection) String() string {
	switch {
	case s.Name != "":
		return strconv.Quote(s.Name)
	case s.ID > 0:
		return fmt.Sprintf("#%d", s.ID)
	default:
		return "(all)"
	}
}

// Options configures conversion behavior.
type Options struct {
	// Selection chooses the sheets to convert.
	Selection Selection
	// SkipEmptyRows drops rows whose every cell is empty.
	// If nil, defaults to true.
	SkipEmptyRows *bool
	// DateFormat overrides date rendering with a strftime-style format (ex. %Y/%m/%d).
	DateFormat string
	// UsePrintArea limits each sheet to its defined print area, when it has one.
	UsePrintArea bool
	// Range limits each sheet to a fixed range such as A1:D20. It wins over UsePrintArea.
	Range string
	// SheetDelimiter is written as a raw line between concatenated sheets.
	SheetDelimiter string
	// Charset decodes byte strings in legacy xls files (default utf-8).
	Charset string
	// Logger receives diagnostics. If nil, the logrus standard logger is used.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldSkipEmptyRows returns whether empty rows are dropped.
func (o Options) ShouldSkipEmptyRows() bool {
	if o.SkipEmptyRows != nil {
		return *o.SkipEmptyRows
	}
	return true
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}
