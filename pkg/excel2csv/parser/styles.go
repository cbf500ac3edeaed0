package parser

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

// ParseStyles streams the style part, keeping custom number formats and the
// numFmtId of every cellXfs record. Absent sections leave their table empty.
func ParseStyles(r io.Reader) (*models.StyleTable, error) {
	table := models.NewStyleTable()
	decoder := xml.NewDecoder(r)
	inNumFmts, inCellXfs := false, false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewMalformedDocumentError(StylesPart, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "numFmts":
				inNumFmts = true
			case "cellXfs":
				inCellXfs = true
			case "numFmt":
				if !inNumFmts {
					continue
				}
				idStr, _ := attrValue(t, "numFmtId")
				id, err := strconv.Atoi(idStr)
				if err != nil {
					continue
				}
				code, _ := attrValue(t, "formatCode")
				table.NumFmts[id] = NormalizeFormat(code)
			case "xf":
				if !inCellXfs {
					continue
				}
				id := 0
				if v, ok := attrValue(t, "numFmtId"); ok {
					if n, err := strconv.Atoi(v); err == nil {
						id = n
					}
				}
				table.CellXfs = append(table.CellXfs, id)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "numFmts":
				inNumFmts = false
			case "cellXfs":
				inCellXfs = false
			}
		}
	}
	return table, nil
}
