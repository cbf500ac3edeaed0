package excel2csv

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/output"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/parser"
)

// source is an opened workbook of either format.
type source interface {
	Sheets() []models.SheetDescriptor
	WriteSheet(sheet models.SheetDescriptor, w output.RowWriter, opts Options) (int, error)
	Close() error
}

// SheetResult summarizes one converted sheet.
type SheetResult struct {
	Sheet models.SheetDescriptor
	Rows  int
}

// ListSheets returns the sheet descriptors of a workbook in document order.
func ListSheets(path string, opts Options) ([]models.SheetDescriptor, error) {
	src, err := open(path, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return src.Sheets(), nil
}

// Convert writes the selected sheets to w, one after another. Each sheet is
// flushed before the next begins; SheetDelimiter, when set, is written
// between sheets.
func Convert(path string, w output.RowWriter, opts Options) ([]SheetResult, error) {
	src, err := open(path, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	targets, err := selectSheets(src.Sheets(), opts.Selection)
	if err != nil {
		return nil, err
	}

	results := make([]SheetResult, 0, len(targets))
	for i, sheet := range targets {
		if i > 0 && opts.SheetDelimiter != "" {
			if sw, ok := w.(output.SeparatorWriter); ok {
				if err := sw.WriteSeparator(opts.SheetDelimiter); err != nil {
					return results, err
				}
			}
		}
		n, err := writeSheet(src, sheet, w, opts)
		if err != nil {
			return results, err
		}
		results = append(results, SheetResult{Sheet: sheet, Rows: n})
	}
	return results, nil
}

// ConvertEach converts every selected sheet into its own writer, obtained
// from create and closed by the caller-supplied function once the sheet is
// done.
func ConvertEach(path string, opts Options, create func(models.SheetDescriptor) (output.RowWriter, func() error, error)) ([]SheetResult, error) {
	src, err := open(path, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	targets, err := selectSheets(src.Sheets(), opts.Selection)
	if err != nil {
		return nil, err
	}

	results := make([]SheetResult, 0, len(targets))
	for _, sheet := range targets {
		w, done, err := create(sheet)
		if err != nil {
			return results, err
		}
		n, err := writeSheet(src, sheet, w, opts)
		if cerr := done(); err == nil {
			err = cerr
		}
		if err != nil {
			return results, err
		}
		results = append(results, SheetResult{Sheet: sheet, Rows: n})
	}
	return results, nil
}

func writeSheet(src source, sheet models.SheetDescriptor, w output.RowWriter, opts Options) (int, error) {
	n, err := src.WriteSheet(sheet, w, opts)
	if err != nil {
		return n, NewSheetError(sheet.Name, err)
	}
	if err := w.Flush(); err != nil {
		return n, NewSheetError(sheet.Name, err)
	}
	opts.logger().WithFields(logrus.Fields{"sheet": sheet.Name, "rows": n}).Debug("sheet converted")
	return n, nil
}

// selectSheets applies a selection to the descriptor list.
func selectSheets(sheets []models.SheetDescriptor, sel Selection) ([]models.SheetDescriptor, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	if sel.IsAll() {
		return sheets, nil
	}
	info := models.WorkbookInfo{Sheets: sheets}
	var (
		s  models.SheetDescriptor
		ok bool
	)
	if sel.Name != "" {
		s, ok = info.SheetByName(sel.Name)
	} else {
		s, ok = info.SheetByID(sel.ID)
	}
	if !ok {
		return nil, NewSheetNotFoundError(sel)
	}
	return []models.SheetDescriptor{s}, nil
}

// open detects the format and opens the matching source.
func open(path string, opts Options) (source, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	format, err := InspectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return openXLSX(path, opts)
	case FormatXLS:
		return openXLS(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, path)
	}
}

// clipArea resolves the fixed range option, if any.
func clipArea(opts Options) (*models.PrintArea, error) {
	if opts.Range == "" {
		return nil, nil
	}
	area, err := parser.ParseRange(opts.Range)
	if err != nil {
		return nil, err
	}
	return &area, nil
}
