package excel2csv

import (
	"errors"
	"fmt"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is neither an xlsx nor an xls workbook.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrNoSheets indicates a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

type (
	// ContainerError reports a missing or unreadable container part.
	ContainerError = parser.ContainerError
	// MalformedDocumentError reports structurally invalid XML.
	MalformedDocumentError = parser.MalformedDocumentError
	// ValueConversionError reports a cell value that could not be rendered.
	ValueConversionError = parser.ValueConversionError
)

// SheetNotFoundError indicates that a sheet selection matched nothing.
type SheetNotFoundError struct {
	Selector string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %s not found", e.Selector)
}

// NewSheetNotFoundError creates a new SheetNotFoundError.
func NewSheetNotFoundError(sel Selection) *SheetNotFoundError {
	return &SheetNotFoundError{Selector: sel.String()}
}

// SheetError represents an error while converting one sheet.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("conversion error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Err:       err,
	}
}
