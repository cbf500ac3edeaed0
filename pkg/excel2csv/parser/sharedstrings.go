package parser

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

// ParseSharedStrings streams the shared string part. Each <si> contributes
// one entry: the text of all its <t> elements in order, rich-text runs
// flattened and phonetic <rPh> runs dropped.
func ParseSharedStrings(r io.Reader) (models.SharedStrings, error) {
	var (
		pool  models.SharedStrings
		value strings.Builder
		inSI  bool
		inT   bool
	)
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewMalformedDocumentError(SharedStringsPart, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inSI = true
				value.Reset()
			case "t":
				inT = inSI
			case "rPh":
				if err := decoder.Skip(); err != nil {
					return nil, NewMalformedDocumentError(SharedStringsPart, err)
				}
			}
		case xml.CharData:
			if inT {
				value.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				if inSI {
					pool = append(pool, value.String())
				}
				inSI = false
			case "t":
				inT = false
			}
		}
	}
	return pool, nil
}
