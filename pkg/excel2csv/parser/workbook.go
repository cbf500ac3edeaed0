package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

// producerExcel is the fileVersion appName written by Excel itself.
const producerExcel = "xl"

// ParseWorkbook streams the workbook part and returns its sheet list, epoch
// flag and defined names.
func ParseWorkbook(r io.Reader) (*models.WorkbookInfo, error) {
	info := &models.WorkbookInfo{AppName: "unknown"}

	type rawSheet struct {
		name, sheetID, relID string
	}
	var sheets []rawSheet

	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewMalformedDocumentError(WorkbookPart, err)
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "fileVersion":
			if v, ok := attrValue(se, "appName"); ok {
				info.AppName = v
			}
		case "workbookPr":
			if v, ok := attrValue(se, "date1904"); ok {
				info.Date1904 = parseXMLBool(v)
			}
		case "sheet":
			var s rawSheet
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					s.name = attr.Value
				case "sheetId":
					s.sheetID = attr.Value
				case "id":
					s.relID = attr.Value
				}
			}
			sheets = append(sheets, s)
		case "definedName":
			dn := models.DefinedName{LocalSheetID: -1}
			dn.Name, _ = attrValue(se, "name")
			if v, ok := attrValue(se, "localSheetId"); ok {
				if id, err := strconv.Atoi(v); err == nil {
					dn.LocalSheetID = id
				}
			}
			text, err := readElementText(decoder)
			if err != nil {
				return nil, NewMalformedDocumentError(WorkbookPart, err)
			}
			dn.RefersTo = strings.TrimSpace(text)
			info.DefinedNames = append(info.DefinedNames, dn)
		}
	}

	for _, s := range sheets {
		id, err := pickSheetID(info.AppName, s.relID, s.sheetID)
		if err != nil {
			return nil, NewMalformedDocumentError(WorkbookPart, fmt.Errorf("sheet %q: %w", s.name, err))
		}
		info.Sheets = append(info.Sheets, models.SheetDescriptor{
			Name:  s.name,
			ID:    id,
			RelID: s.relID,
			Part:  defaultSheetPart(id),
		})
	}
	return info, nil
}

// pickSheetID chooses between the relationship id and sheetId. Excel-written
// workbooks number relationships in sheet order, so their r:id is preferred;
// other producers are trusted on sheetId.
func pickSheetID(appName, relID, sheetID string) (int, error) {
	rel, relErr := relationshipNumber(relID)
	sid, sidErr := strconv.Atoi(strings.TrimSpace(sheetID))

	if appName == producerExcel {
		if relErr == nil {
			return rel, nil
		}
		if sidErr == nil {
			return sid, nil
		}
	} else {
		if sidErr == nil {
			return sid, nil
		}
		if relErr == nil {
			return rel, nil
		}
	}
	return 0, fmt.Errorf("no usable r:id %q or sheetId %q", relID, sheetID)
}

// relationshipNumber extracts 3 from "rId3".
func relationshipNumber(relID string) (int, error) {
	digits := strings.TrimLeftFunc(relID, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if digits == "" {
		return 0, fmt.Errorf("relationship id %q has no number", relID)
	}
	return strconv.Atoi(digits)
}

func defaultSheetPart(id int) string {
	return "xl/worksheets/sheet" + strconv.Itoa(id) + ".xml"
}

// ParseWorkbookRels maps relationship ids to worksheet part names.
func ParseWorkbookRels(r io.Reader) (map[string]string, error) {
	result := make(map[string]string)
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewMalformedDocumentError(WorkbookRelsPart, err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target, relType string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				case "Type":
					relType = attr.Value
				}
			}
			if rID != "" && strings.Contains(strings.ToLower(relType), "worksheet") {
				result[rID] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result, nil
}

// ResolveSheetParts points each descriptor at the worksheet part named by its
// relationship, keeping the sheet{id}.xml default when no relationship matches.
func ResolveSheetParts(info *models.WorkbookInfo, rels map[string]string) {
	for i, s := range info.Sheets {
		if part, ok := rels[s.RelID]; ok {
			info.Sheets[i].Part = part
		}
	}
}

func attrValue(se xml.StartElement, local string) (string, bool) {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

func parseXMLBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// readElementText collects the character data of the element whose start
// tag was just consumed, including nested elements.
func readElementText(decoder *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return b.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}
