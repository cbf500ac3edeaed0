package models

// WorkbookInfo holds workbook-level metadata.
type WorkbookInfo struct {
	// AppName is the producing application from fileVersion, or "unknown".
	AppName string
	// Date1904 selects the 1904 date epoch.
	Date1904 bool
	// Sheets lists worksheets in document order.
	Sheets []SheetDescriptor
	// DefinedNames lists workbook defined names in document order.
	DefinedNames []DefinedName
}

// SheetByID returns the descriptor with the given id.
func (w *WorkbookInfo) SheetByID(id int) (SheetDescriptor, bool) {
	for _, s := range w.Sheets {
		if s.ID == id {
			return s, true
		}
	}
	return SheetDescriptor{}, false
}

// SheetByName returns the descriptor with the given name.
func (w *WorkbookInfo) SheetByName(name string) (SheetDescriptor, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetDescriptor{}, false
}

// SheetPosition returns the zero-based document position of a sheet name, or -1.
func (w *WorkbookInfo) SheetPosition(name string) int {
	for i, s := range w.Sheets {
		if s.Name == name {
			return i
		}
	}
	return -1
}
