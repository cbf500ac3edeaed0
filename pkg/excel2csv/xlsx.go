package excel2csv

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/output"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/parser"
)

// xlsxSource converts OOXML workbooks. Styles and shared strings are loaded
// on first use and shared read-only by every sheet.
type xlsxSource struct {
	zr        *zip.ReadCloser
	container *parser.ZipContainer
	info      *models.WorkbookInfo

	styles  *models.StyleTable
	strings models.SharedStrings
	loaded  bool
}

func openXLSX(path string, opts Options) (*xlsxSource, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	src := &xlsxSource{
		zr:        zr,
		container: parser.NewZipContainer(&zr.Reader),
	}

	info, err := src.readWorkbook(opts)
	if err != nil {
		zr.Close()
		return nil, err
	}
	src.info = info
	return src, nil
}

func (s *xlsxSource) readWorkbook(opts Options) (*models.WorkbookInfo, error) {
	rc, err := s.container.Open(parser.WorkbookPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	info, err := parser.ParseWorkbook(rc)
	if err != nil {
		return nil, err
	}

	rels, err := readOptionalPart(s.container, parser.WorkbookRelsPart, parser.ParseWorkbookRels)
	if err != nil {
		return nil, err
	}
	if rels != nil {
		parser.ResolveSheetParts(info, rels)
	} else {
		opts.logger().Debug("workbook relationships missing, using sheet ids for part names")
	}
	return info, nil
}

func (s *xlsxSource) Sheets() []models.SheetDescriptor {
	return s.info.Sheets
}

func (s *xlsxSource) load(opts Options) error {
	if s.loaded {
		return nil
	}
	styles, err := readOptionalPart(s.container, parser.StylesPart, parser.ParseStyles)
	if err != nil {
		return err
	}
	if styles == nil {
		opts.logger().Debug("style part missing, using built-in number formats only")
		styles = models.NewStyleTable()
	}

	strs, err := readOptionalPart(s.container, parser.SharedStringsPart, parser.ParseSharedStrings)
	if err != nil {
		return err
	}
	if strs == nil {
		opts.logger().Debug("shared string part missing, using an empty pool")
	}

	s.styles, s.strings, s.loaded = styles, strs, true
	return nil
}

func (s *xlsxSource) WriteSheet(sheet models.SheetDescriptor, w output.RowWriter, opts Options) (int, error) {
	if err := s.load(opts); err != nil {
		return 0, err
	}

	sr := parser.NewSheetReader(s.info, s.styles, s.strings)
	sr.SkipEmptyRows = opts.ShouldSkipEmptyRows()
	sr.DateFormat = opts.DateFormat
	sr.Logger = opts.logger().WithField("sheet", sheet.Name)

	area, err := clipArea(opts)
	if err != nil {
		return 0, err
	}
	if area == nil && opts.UsePrintArea {
		area, _ = parser.PrintAreaFor(s.info, sheet.Name)
	}
	sr.Area = area

	return sr.StreamPart(s.container, sheet.Part, w.WriteRow)
}

func (s *xlsxSource) Close() error {
	return s.zr.Close()
}

// readOptionalPart parses a part that may be absent; absence yields the zero
// value and no error.
func readOptionalPart[T any](c parser.Container, part string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := c.Open(part)
	if err != nil {
		if errors.Is(err, parser.ErrPartNotFound) {
			return zero, nil
		}
		return zero, err
	}
	defer rc.Close()
	return parse(rc)
}
