package layout

import (
	"fmt"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/xuri/excelize/v2"
)

// Header labels as shown in row 12, broken the way the template breaks them.
var headerLabels = [models.FieldCount]string{
	"Traceability\nReq-ID",
	"Test Case\nID",
	"Priority",
	"Test Case Objective",
	"Test Precondition",
	"Test Steps",
	"Test Inputs\n(Conditions / Values)",
	"Test Case Design\nMethodology",
	"Dependent\nTest Cases",
	"Expected\nOutcome",
	"Actual\nOutcome",
	"Test Result",
	"Remarks",
	"Track Bug ID\n(If Applicable)",
}

var columnWidths = []struct {
	col   string
	width float64
}{
	{"B", 25}, {"C", 15}, {"D", 10}, {"E", 25}, {"F", 25}, {"G", 25}, {"H", 25},
	{"I", 25}, {"J", 25}, {"K", 25}, {"L", 25}, {"M", 15}, {"N", 30}, {"O", 15}, {"P", 15},
}

// Cells of the document skeleton above the table.
const (
	titleCell        = "B2"
	titleEndCell     = "P2"
	detailsTitleCell = "B4"
	resultsTitleCell = "B11"
	summaryLabelCol  = 14 // N
	summaryValueCol  = 15 // O
	summaryFirstRow  = 5
	totalRow         = 9
)

// Setup turns sheet into an empty test table: it renames the sheet to
// t.SheetName and writes the title, details labels, summary formulas,
// header row, borders over the data window, the Test Result drop-down and
// a print area.
func (t Table) Setup(doc Document, sheet string) error {
	if sheet != t.SheetName {
		if err := doc.SetSheetName(sheet, t.SheetName); err != nil {
			return fmt.Errorf("rename sheet %q: %w", sheet, err)
		}
	}
	sheet = t.SheetName

	steps := []func(Document, string) error{
		t.setupColumns,
		t.setupTitles,
		t.setupDetailsLabels,
		t.setupSummary,
		t.setupHeader,
		t.setupWindow,
		t.setupResultValidation,
		t.SetPrintArea,
	}
	for _, step := range steps {
		if err := step(doc, sheet); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) setupColumns(doc Document, sheet string) error {
	for _, cw := range columnWidths {
		if err := doc.SetColWidth(sheet, cw.col, cw.col, cw.width); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) setupTitles(doc Document, sheet string) error {
	if err := doc.MergeCell(sheet, titleCell, titleEndCell); err != nil {
		return err
	}
	if err := doc.SetCellValue(sheet, titleCell, "3.0 Software Validation Testing"); err != nil {
		return err
	}
	if err := applyStyle(doc, sheet, titleCell, titleCell, titleStyle()); err != nil {
		return err
	}
	for cell, text := range map[string]string{
		detailsTitleCell: "3.1 Testing Details",
		resultsTitleCell: "3.2 Validation Testing Results",
	} {
		if err := doc.SetCellValue(sheet, cell, text); err != nil {
			return err
		}
		if err := applyStyle(doc, sheet, cell, cell, boldStyle()); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) setupDetailsLabels(doc Document, sheet string) error {
	bold, err := doc.NewStyle(boldStyle())
	if err != nil {
		return err
	}
	for i := range detailsRowCount {
		row := detailsFirstRow + i
		for _, l := range []struct {
			col  int
			text string
		}{
			{projectLabelColumn, projectLabels[i]},
			{testLabelColumn, testLabels[i]},
		} {
			cell := cellName(l.col, row)
			if err := doc.SetCellValue(sheet, cell, l.text); err != nil {
				return err
			}
			if err := doc.SetCellStyle(sheet, cell, cell, bold); err != nil {
				return err
			}
		}
	}
	for _, row := range []int{detailsFirstRow + 4, detailsFirstRow + 5} {
		if err := doc.SetCellValue(sheet, cellName(testValueColumn, row), DatePlaceholder); err != nil {
			return err
		}
	}
	return nil
}

// summaryFormulas are written to O5:O9, in label order.
func (t Table) summaryFormulas() []struct{ label, formula string } {
	rng := func(f models.Field) string {
		col := ColumnName(f)
		return fmt.Sprintf("%s%d:%s%d", col, t.StartRow, col, t.EndRow())
	}
	result := rng(models.FieldTestResult)
	return []struct{ label, formula string }{
		{"Total No of Bugs Identified", fmt.Sprintf("COUNTA(%s)", rng(models.FieldTrackBugID))},
		{"Passed Test Cases", fmt.Sprintf("COUNTIF(%s,%q)", result, string(models.ResultPassed))},
		{"Failed Test Cases", fmt.Sprintf("COUNTIF(%s,%q)", result, string(models.ResultFailed))},
		{"Test Cases Not Tested", fmt.Sprintf("COUNTIF(%s,%q)", result, string(models.ResultNotTested))},
		{"Total Test Cases", fmt.Sprintf("COUNTA(%s)", rng(models.FieldTestCaseID))},
	}
}

func (t Table) setupSummary(doc Document, sheet string) error {
	labelStyle, err := doc.NewStyle(summaryLabelStyle())
	if err != nil {
		return err
	}
	valueStyle, err := doc.NewStyle(summaryValueStyle())
	if err != nil {
		return err
	}

	for i, s := range t.summaryFormulas() {
		row := summaryFirstRow + i
		label, value := cellName(summaryLabelCol, row), cellName(summaryValueCol, row)
		if err := doc.SetCellValue(sheet, label, s.label); err != nil {
			return err
		}
		if err := doc.SetCellFormula(sheet, value, s.formula); err != nil {
			return err
		}
		if err := doc.SetCellStyle(sheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := doc.SetCellStyle(sheet, value, value, valueStyle); err != nil {
			return err
		}
	}

	// The total spans two rows.
	for _, col := range []int{summaryLabelCol, summaryValueCol} {
		if err := doc.MergeCell(sheet, cellName(col, totalRow), cellName(col, totalRow+1)); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) setupHeader(doc Document, sheet string) error {
	for i, label := range headerLabels {
		if err := doc.SetCellValue(sheet, cellName(FirstColumn+i, t.HeaderRow), label); err != nil {
			return err
		}
	}
	first := cellName(FirstColumn, t.HeaderRow)
	last := cellName(FirstColumn+models.FieldCount-1, t.HeaderRow)
	return applyStyle(doc, sheet, first, last, headerStyle())
}

// setupWindow borders [StartRow, EndRow] x [B, O].
func (t Table) setupWindow(doc Document, sheet string) error {
	first := cellName(FirstColumn, t.StartRow)
	last := cellName(FirstColumn+models.FieldCount-1, t.EndRow())
	if err := applyStyle(doc, sheet, first, last, borderStyle()); err != nil {
		return err
	}
	// Empty result cells carry the drop-down.
	col := ColumnOf(models.FieldTestResult)
	for row := t.StartRow; row <= t.EndRow(); row++ {
		if err := doc.SetCellValue(sheet, cellName(col, row), ""); err != nil {
			return err
		}
	}
	return nil
}

// ResultRange is the Test Result column of the data window, e.g. "M13:M112".
func (t Table) ResultRange() string {
	col := ColumnName(models.FieldTestResult)
	return fmt.Sprintf("%s%d:%s%d", col, t.StartRow, col, t.EndRow())
}

func (t Table) setupResultValidation(doc Document, sheet string) error {
	allowed := make([]string, len(models.TestResults))
	for i, r := range models.TestResults {
		allowed[i] = string(r)
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = t.ResultRange()
	if err := dv.SetDropList(allowed); err != nil {
		return err
	}
	dv.SetError(excelize.DataValidationErrorStyleStop, "Invalid Input", "Select a value from the list")
	dv.SetInput("Test Result Selection", "Please select a test result")
	return doc.AddDataValidation(sheet, dv)
}
