package legacy

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/parser"
)

// datePattern renders date cells when no override is configured.
const datePattern = "d-mmm-yy"

// RowOptions controls how legacy rows are emitted.
type RowOptions struct {
	SkipEmptyRows bool
	// DateFormat, when set, is a strftime-style format for date cells.
	DateFormat string
	// Area, when set, limits output to the rows and columns it covers.
	Area *models.PrintArea
}

// Rows emits every row of a legacy sheet as a dense string slice and returns
// the number of rows emitted.
func Rows(sheet Sheet, opts RowOptions, emit parser.RowFunc) (int, error) {
	emitted := 0
	ncols := sheet.NCols()
	for r := 0; r < sheet.NRows(); r++ {
		if opts.Area != nil && !opts.Area.ContainsRow(r+1) {
			continue
		}
		dense := make([]string, ncols)
		for c := 0; c < ncols; c++ {
			dense[c] = Render(sheet.Cell(r, c), opts.DateFormat)
		}
		if opts.Area != nil {
			dense = opts.Area.Clip(dense)
		}
		if opts.SkipEmptyRows && models.IsBlank(dense) {
			continue
		}
		if err := emit(dense); err != nil {
			return emitted, fmt.Errorf("emit row %d: %w", r+1, err)
		}
		emitted++
	}
	return emitted, nil
}

// Render converts a legacy cell to its output text.
func Render(cell Cell, dateFormat string) string {
	switch cell.Kind {
	case KindBoolean:
		if cell.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindNumber:
		return strconv.FormatFloat(cell.Number, 'f', -1, 64)
	case KindDate:
		raw := strconv.FormatFloat(cell.Number, 'f', -1, 64)
		out, err := parser.FormatSerial(raw, datePattern, parser.FormatDate, false, dateFormat)
		if err != nil {
			return raw
		}
		return out
	case KindText, KindError:
		return cell.Text
	default:
		return ""
	}
}
