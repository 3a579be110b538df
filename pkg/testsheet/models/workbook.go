package models

// Summary tallies the occupied rows of a test table.
type Summary struct {
	// SheetName is the sheet that was scanned.
	SheetName string `json:"sheet_name"`
	Total     int    `json:"total"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	// NotTested counts every row whose result is neither Passed nor Failed.
	NotTested int `json:"not_tested"`
	// WithBugs counts rows with a non-empty Track Bug ID.
	WithBugs int `json:"with_bugs"`
	// NextRow is the row the next added test case would be written to.
	NextRow int `json:"next_row"`
}

// WorkbookInfo describes a registered workbook.
type WorkbookInfo struct {
	ID     string   `json:"id"`
	Sheets []string `json:"sheets"`
	// TestCount and NextRow are only set when the validation sheet exists.
	TestCount  *int        `json:"test_count,omitempty"`
	NextRow    *int        `json:"next_row,omitempty"`
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}

// PrintArea is a print range defined on a sheet.
type PrintArea struct {
	SheetName string `json:"sheet_name"`
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// SheetReport is the full content of one test sheet, used by inspect.
type SheetReport struct {
	SheetName string   `json:"sheet_name"`
	Details   Details  `json:"details"`
	Summary   Summary  `json:"summary"`
	TestCases []Record `json:"test_cases"`
}
