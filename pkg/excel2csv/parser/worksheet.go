package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

// parseState tracks which worksheet region the stream is in. Each state is
// entered only from its parent.
type parseState int

const (
	stateIdle  parseState = iota
	stateSheet            // inside <sheetData>
	stateRow              // inside <row>
	stateCell             // inside <c>
	stateValue            // inside <v>, or <t> of an inline string
)

// RowFunc receives each materialized row in document order.
type RowFunc func(row []string) error

// SheetReader rebuilds dense rows from a worksheet part using the
// workbook-level lookup tables, which it never modifies.
type SheetReader struct {
	Date1904      bool
	Styles        *models.StyleTable
	Strings       models.SharedStrings
	SkipEmptyRows bool
	// DateFormat, when set, is a strftime-style format used for every date cell.
	DateFormat string
	// Area, when set, limits output to the rows and columns it covers.
	Area   *models.PrintArea
	Logger logrus.FieldLogger

	tokens map[string][]dateToken
}

// NewSheetReader returns a reader that skips empty rows.
func NewSheetReader(info *models.WorkbookInfo, styles *models.StyleTable, strs models.SharedStrings) *SheetReader {
	if styles == nil {
		styles = models.NewStyleTable()
	}
	return &SheetReader{
		Date1904:      info.Date1904,
		Styles:        styles,
		Strings:       strs,
		SkipEmptyRows: true,
	}
}

// StreamPart opens a worksheet part from the container and streams it.
func (sr *SheetReader) StreamPart(c Container, part string, emit RowFunc) (int, error) {
	rc, err := c.Open(part)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := sr.Stream(rc, emit)
	return n, withPart(err, part)
}

// Stream parses one worksheet and calls emit for every row that survives the
// empty-row policy. It returns the number of rows emitted.
func (sr *SheetReader) Stream(r io.Reader, emit RowFunc) (int, error) {
	var (
		state   parseState
		row     *models.Row
		cell    models.Cell
		address string
		value   strings.Builder
		lastRow int
		prevCol = -1
		emitted int
	)

	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return emitted, NewMalformedDocumentError("", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch state {
			case stateIdle:
				if t.Name.Local == "sheetData" {
					state = stateSheet
				}
			case stateSheet:
				if t.Name.Local == "row" {
					row = sr.startRow(t, lastRow)
					lastRow = row.Number
					prevCol = -1
					state = stateRow
				}
			case stateRow:
				if t.Name.Local == "c" {
					cell, address = startCell(t)
					value.Reset()
					state = stateCell
				}
			case stateCell:
				switch t.Name.Local {
				case "v":
					state = stateValue
				case "t":
					if cell.Type == models.TypeInlineString {
						state = stateValue
					}
				case "f", "rPh":
					if err := decoder.Skip(); err != nil {
						return emitted, NewMalformedDocumentError("", err)
					}
				}
			}
		case xml.CharData:
			if state == stateValue {
				value.Write(t)
			}
		case xml.EndElement:
			switch state {
			case stateValue:
				if t.Name.Local == "v" || t.Name.Local == "t" {
					state = stateCell
				}
			case stateCell:
				if t.Name.Local == "c" {
					cell.Column = sr.columnOf(address, prevCol, row.Number)
					cell.Raw = value.String()
					row.Set(cell.Column, sr.resolve(cell, row.Number))
					prevCol = cell.Column
					state = stateRow
				}
			case stateRow:
				if t.Name.Local == "row" {
					ok, err := sr.finishRow(row, emit)
					if err != nil {
						return emitted, fmt.Errorf("emit row %d: %w", row.Number, err)
					}
					if ok {
						emitted++
					}
					row = nil
					state = stateSheet
				}
			case stateSheet:
				if t.Name.Local == "sheetData" {
					state = stateIdle
				}
			}
		}
	}
	return emitted, nil
}

func (sr *SheetReader) startRow(se xml.StartElement, lastRow int) *models.Row {
	number := lastRow + 1
	if v, ok := attrValue(se, "r"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			number = n
		}
	}
	row := models.NewRow(number)
	if v, ok := attrValue(se, "spans"); ok {
		row.SpanEnd = spanEnd(v)
	}
	return row
}

// spanEnd returns the largest column named by a spans attribute such as
// "1:5" or "1:3 6:9".
func spanEnd(spans string) int {
	end := 0
	for _, span := range strings.Fields(spans) {
		_, last, found := strings.Cut(span, ":")
		if !found {
			last = span
		}
		if n, err := strconv.Atoi(last); err == nil && n > end {
			end = n
		}
	}
	return min(end, excelize.MaxColumns)
}

func startCell(se xml.StartElement) (models.Cell, string) {
	var cell models.Cell
	var address string
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "t":
			cell.Type = models.ParseTypeHint(attr.Value)
		case "s":
			if n, err := strconv.Atoi(strings.TrimSpace(attr.Value)); err == nil {
				cell.Style = n
				cell.HasStyle = true
			}
		case "r":
			address = attr.Value
		}
	}
	return cell, address
}

// columnOf decodes an explicit cell address, or continues from the previous
// cell when the address is absent.
func (sr *SheetReader) columnOf(address string, prevCol, rowNumber int) int {
	if address == "" {
		return prevCol + 1
	}
	letters, _, err := excelize.SplitCellName(address)
	if err == nil {
		var col int
		if col, err = ColumnIndex(letters); err == nil {
			return col
		}
	}
	sr.logger().WithFields(logrus.Fields{"row": rowNumber, "address": address}).
		WithError(err).Debug("unreadable cell address, using next column")
	return prevCol + 1
}

func (sr *SheetReader) resolve(cell models.Cell, rowNumber int) string {
	switch cell.Type {
	case models.TypeSharedString:
		if idx, err := strconv.Atoi(strings.TrimSpace(cell.Raw)); err == nil {
			if s, ok := sr.Strings.Lookup(idx); ok {
				return s
			}
		}
		sr.degraded(cell, rowNumber, "shared string index out of range")
		return cell.Raw
	case models.TypeBoolean:
		switch strings.TrimSpace(cell.Raw) {
		case "1":
			return "TRUE"
		case "0":
			return "FALSE"
		}
		return cell.Raw
	}

	// Every other type honors a date or time style. Only untyped cells are
	// expected to hold numbers; text that is not numeric passes through.
	if !cell.HasStyle || cell.Raw == "" {
		return cell.Raw
	}
	pattern, kind := sr.formatOf(cell.Style)
	if kind != FormatDate && kind != FormatTime {
		return cell.Raw
	}
	if cell.Type != models.TypeNumeric && !isNumber(cell.Raw) {
		return cell.Raw
	}
	out, err := sr.formatSerial(cell.Raw, pattern, kind)
	if err != nil {
		sr.degraded(cell, rowNumber, err.Error())
		return cell.Raw
	}
	return out
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// formatOf resolves a style index to its pattern and kind.
func (sr *SheetReader) formatOf(style int) (string, FormatKind) {
	if style < 0 || style >= len(sr.Styles.CellXfs) {
		return "", FormatUnknown
	}
	pattern, ok := FormatPattern(sr.Styles.NumFmts, sr.Styles.CellXfs[style])
	if !ok {
		return "", FormatUnknown
	}
	return pattern, ClassifyFormat(pattern)
}

func (sr *SheetReader) formatSerial(raw, pattern string, kind FormatKind) (string, error) {
	if kind != FormatDate || sr.DateFormat != "" {
		return FormatSerial(raw, pattern, kind, sr.Date1904, sr.DateFormat)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw, &ValueConversionError{Value: raw, Reason: "not a number"}
	}
	t, err := SerialToTime(v, sr.Date1904)
	if err != nil {
		return raw, err
	}
	if sr.tokens == nil {
		sr.tokens = make(map[string][]dateToken)
	}
	tokens, ok := sr.tokens[pattern]
	if !ok {
		tokens = TranslatePattern(pattern)
		sr.tokens[pattern] = tokens
	}
	return RenderTokens(t, tokens), nil
}

func (sr *SheetReader) finishRow(row *models.Row, emit RowFunc) (bool, error) {
	if sr.Area != nil && !sr.Area.ContainsRow(row.Number) {
		return false, nil
	}
	dense := row.Dense()
	if sr.Area != nil {
		dense = sr.Area.Clip(dense)
	}
	if sr.SkipEmptyRows && models.IsBlank(dense) {
		return false, nil
	}
	return true, emit(dense)
}

func (sr *SheetReader) degraded(cell models.Cell, rowNumber int, reason string) {
	sr.logger().WithFields(logrus.Fields{
		"cell": ColumnLetters(cell.Column) + strconv.Itoa(rowNumber),
		"raw":  cell.Raw,
	}).Debugf("passing raw value through: %s", reason)
}

func (sr *SheetReader) logger() logrus.FieldLogger {
	if sr.Logger != nil {
		return sr.Logger
	}
	return logrus.StandardLogger()
}
