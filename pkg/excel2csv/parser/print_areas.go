package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

const printAreaName = "_xlnm.Print_Area"

// PrintAreaFor returns the bounding box of a sheet's print areas. A defined
// name applies when it is scoped to the sheet's position or its reference
// names the sheet.
func PrintAreaFor(info *models.WorkbookInfo, sheetName string) (*models.PrintArea, bool) {
	position := info.SheetPosition(sheetName)

	var result *models.PrintArea
	for _, dn := range info.DefinedNames {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		refSheet, areas := parsePrintAreaReference(dn.RefersTo)
		scoped := dn.LocalSheetID >= 0 && dn.LocalSheetID == position
		if !scoped && refSheet != sheetName {
			continue
		}
		for _, area := range areas {
			if result == nil {
				a := area
				result = &a
				continue
			}
			u := result.Union(area)
			result = &u
		}
	}
	return result, result != nil
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var areas []models.PrintArea
	var sheetName string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := part[:idx]
		if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		if sheetName == "" {
			sheetName = sheet
		}

		if area, err := ParseRange(part[idx+1:]); err == nil {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}

// ParseRange parses a range such as A1:D10 or $A$1:$D$10. A single cell
// reference is a one-cell range.
func ParseRange(rangeStr string) (models.PrintArea, error) {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	first, last, found := strings.Cut(rangeStr, ":")
	if !found {
		last = first
	}

	startCol, startRow, err := coordinates(first)
	if err != nil {
		return models.PrintArea{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
	}
	endCol, endRow, err := coordinates(last)
	if err != nil {
		return models.PrintArea{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
	}

	return models.PrintArea{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}, nil
}

// coordinates splits a cell reference into a 1-based column and row.
func coordinates(ref string) (int, int, error) {
	letters, row, err := excelize.SplitCellName(ref)
	if err != nil {
		return 0, 0, err
	}
	if row > excelize.TotalRows {
		return 0, 0, excelize.ErrMaxRows
	}
	col, err := ColumnIndex(letters)
	if err != nil {
		return 0, 0, err
	}
	return col + 1, row, nil
}
