// Package layout defines the fixed shape of a test sheet and reads and
// writes test cases in its data window.
package layout

import (
	"errors"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrRowNotFound is returned when no row in the window carries a test case id.
var ErrRowNotFound = errors.New("test case row not found")

// Document is the subset of *excelize.File the layout engine works with.
type Document interface {
	GetSheetList() []string
	GetSheetName(index int) string
	GetActiveSheetIndex() int
	SetSheetName(source, target string) error
	GetCellValue(sheet, cell string, opts ...excelize.Options) (string, error)
	SetCellValue(sheet, cell string, value interface{}) error
	SetCellFormula(sheet, cell, formula string, opts ...excelize.FormulaOpts) error
	NewStyle(style *excelize.Style) (int, error)
	SetCellStyle(sheet, topLeftCell, bottomRightCell string, styleID int) error
	SetColWidth(sheet, startCol, endCol string, width float64) error
	SetRowHeight(sheet string, row int, height float64) error
	MergeCell(sheet, topLeftCell, bottomRightCell string) error
	AddDataValidation(sheet string, dv *excelize.DataValidation) error
	SetDefinedName(definedName *excelize.DefinedName) error
	GetDefinedName() []excelize.DefinedName
}

var _ Document = (*excelize.File)(nil)

// Sheet names used by the test plan templates.
const (
	ValidationSheet  = "SW Validation Testing"
	IntegrationSheet = "SW Integration Testing"
	UnitSheet        = "SW Unit Testing"
)

// FirstColumn is the 1-based column of the first table field (B).
const FirstColumn = 2

// Table describes where the test table lives on a sheet.
type Table struct {
	// SheetName is the canonical sheet the row allocator scans.
	SheetName string
	// HeaderRow holds the column labels.
	HeaderRow int
	// StartRow is the first data row.
	StartRow int
	// Capacity is the number of rows in the data window.
	Capacity int
}

// Default returns the layout of the validation testing template:
// header on row 12 and one hundred data rows from row 13.
func Default() Table {
	return Table{
		SheetName: ValidationSheet,
		HeaderRow: 12,
		StartRow:  13,
		Capacity:  100,
	}
}

// EndRow is the last row of the data window (inclusive).
func (t Table) EndRow() int {
	return t.StartRow + t.Capacity - 1
}

// IsCanonical reports whether sheet is the table's own sheet.
func (t Table) IsCanonical(sheet string) bool {
	return sheet == t.SheetName
}

// ColumnOf returns the 1-based column of a field.
func ColumnOf(f models.Field) int {
	return FirstColumn + int(f)
}

// ColumnName returns the column letters of a field.
func ColumnName(f models.Field) string {
	name, _ := excelize.ColumnNumberToName(ColumnOf(f))
	return name
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
