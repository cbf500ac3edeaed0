package models

// SheetDescriptor identifies one worksheet of a workbook.
type SheetDescriptor struct {
	// Name is the sheet tab name.
	Name string `json:"name"`
	// ID selects the worksheet part (1-based).
	ID int `json:"id"`
	// RelID is the r:id relationship reference, if any.
	RelID string `json:"-"`
	// Part is the resolved worksheet part name inside the container.
	Part string `json:"-"`
}

// DefinedName is a workbook-level named range.
type DefinedName struct {
	// Name is the defined name, e.g. _xlnm.Print_Area.
	Name string
	// LocalSheetID is the zero-based sheet position the name is scoped to, or -1.
	LocalSheetID int
	// RefersTo is the reference text, e.g. 'Sheet1'!$A$1:$D$10.
	RefersTo string
}
