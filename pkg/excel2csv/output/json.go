package output

import (
	"github.com/goccy/go-json"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

// SheetsToJSON serializes a sheet listing as [{"name":...,"id":...}].
func SheetsToJSON(sheets []models.SheetDescriptor, pretty bool) ([]byte, error) {
	if sheets == nil {
		sheets = []models.SheetDescriptor{}
	}
	if pretty {
		return json.MarshalIndent(sheets, "", "  ")
	}
	return json.Marshal(sheets)
}
