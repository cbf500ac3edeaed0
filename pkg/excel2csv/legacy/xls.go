package legacy

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/parser"
)

// DefaultCharset is used to decode byte strings of pre-BIFF8 files.
const DefaultCharset = "utf-8"

type xlsBook struct {
	wb     *xls.WorkBook
	closer io.Closer
}

// Open opens a legacy workbook file. The book holds the file open until Close.
func Open(path, charset string) (Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	book, err := openReader(f, charset)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	book.closer = f
	return book, nil
}

func openReader(r io.ReadSeeker, charset string) (*xlsBook, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	wb, err := xls.OpenReader(r, charset)
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	return &xlsBook{wb: wb}, nil
}

func (b *xlsBook) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}

func (b *xlsBook) SheetNames() []string {
	names := make([]string, 0, b.wb.NumSheets())
	for i := 0; i < b.wb.NumSheets(); i++ {
		if ws := b.wb.GetSheet(i); ws != nil {
			names = append(names, ws.Name)
		}
	}
	return names
}

func (b *xlsBook) SheetByIndex(i int) (Sheet, error) {
	if i < 0 || i >= b.wb.NumSheets() {
		return nil, fmt.Errorf("sheet index %d: %w", i, ErrNoSheet)
	}
	ws := b.wb.GetSheet(i)
	if ws == nil {
		return nil, fmt.Errorf("sheet index %d: %w", i, ErrNoSheet)
	}
	return newXLSSheet(ws), nil
}

type xlsSheet struct {
	ws    *xls.WorkSheet
	nrows int
	ncols int
}

func newXLSSheet(ws *xls.WorkSheet) *xlsSheet {
	s := &xlsSheet{ws: ws, nrows: int(ws.MaxRow) + 1}
	for r := 0; r < s.nrows; r++ {
		if row := ws.Row(r); row != nil && row.LastCol() > s.ncols {
			s.ncols = row.LastCol()
		}
	}
	return s
}

func (s *xlsSheet) Name() string { return s.ws.Name }
func (s *xlsSheet) NRows() int   { return s.nrows }
func (s *xlsSheet) NCols() int   { return s.ncols }

func (s *xlsSheet) Cell(row, col int) Cell {
	r := s.ws.Row(row)
	if r == nil || col < 0 || col >= r.LastCol() {
		return Cell{Kind: KindEmpty}
	}
	return classify(r.Col(col))
}

// errorTexts are the error literals a legacy cell can hold.
var errorTexts = map[string]bool{
	"#NULL!":  true,
	"#DIV/0!": true,
	"#VALUE!": true,
	"#REF!":   true,
	"#NAME?":  true,
	"#NUM!":   true,
	"#N/A":    true,
}

// classify recovers a typed cell from the reader's rendered text. The reader
// renders numbers under a built-in date format as RFC 3339 timestamps in the
// 1900 date system; those come back as date serials.
func classify(text string) Cell {
	switch {
	case text == "":
		return Cell{Kind: KindEmpty}
	case strings.EqualFold(text, "true"):
		return Cell{Kind: KindBoolean, Bool: true}
	case strings.EqualFold(text, "false"):
		return Cell{Kind: KindBoolean, Bool: false}
	case errorTexts[text]:
		return Cell{Kind: KindError, Text: text}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Cell{Kind: KindNumber, Number: f}
	}
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return Cell{Kind: KindDate, Number: parser.TimeToSerial(t, false)}
	}
	return Cell{Kind: KindText, Text: text}
}
