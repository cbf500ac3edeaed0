package excel2csv

import (
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/legacy"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/output"
)

// xlsSource converts legacy binary workbooks through the legacy adapter.
// Sheet ids are 1-based positions.
type xlsSource struct {
	book legacy.Book
}

func openXLS(path string, opts Options) (*xlsSource, error) {
	book, err := legacy.Open(path, opts.Charset)
	if err != nil {
		return nil, err
	}
	return &xlsSource{book: book}, nil
}

func (s *xlsSource) Sheets() []models.SheetDescriptor {
	names := s.book.SheetNames()
	sheets := make([]models.SheetDescriptor, len(names))
	for i, name := range names {
		sheets[i] = models.SheetDescriptor{Name: name, ID: i + 1}
	}
	return sheets
}

func (s *xlsSource) WriteSheet(sheet models.SheetDescriptor, w output.RowWriter, opts Options) (int, error) {
	ws, err := s.book.SheetByIndex(sheet.ID - 1)
	if err != nil {
		return 0, err
	}

	area, err := clipArea(opts)
	if err != nil {
		return 0, err
	}
	if area == nil && opts.UsePrintArea {
		opts.logger().WithField("sheet", sheet.Name).Debug("print areas are not read from xls files")
	}

	return legacy.Rows(ws, legacy.RowOptions{
		SkipEmptyRows: opts.ShouldSkipEmptyRows(),
		DateFormat:    opts.DateFormat,
		Area:          area,
	}, w.WriteRow)
}

func (s *xlsSource) Close() error {
	return s.book.Close()
}
