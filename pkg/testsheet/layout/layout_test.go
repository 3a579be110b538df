package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/xuri/excelize/v2"
	"pgregory.net/rapid"
)

func newSheet(t *testing.T) (*excelize.File, Table) {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	table := Default()
	require.NoError(t, table.Setup(f, f.GetSheetName(f.GetActiveSheetIndex())))
	return f, table
}

func testCase(id string) [models.FieldCount]string {
	return models.TestCase{
		TraceabilityReqID: "REQ-1",
		TestCaseID:        id,
		Priority:          "High",
		Objective:         "Verify " + id,
		Result:            models.ResultNotTested,
	}.Values()
}

func TestSetup(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	assert.Equal(t, []string{ValidationSheet}, f.GetSheetList())

	tests := []struct {
		cell     string
		expected string
	}{
		{"B2", "3.0 Software Validation Testing"},
		{"B4", "3.1 Testing Details"},
		{"B5", "Project Name and ID"},
		{"B10", "Version of Item under test"},
		{"I5", "Test Environment"},
		{"I10", "Test End Date"},
		{"J9", DatePlaceholder},
		{"J10", DatePlaceholder},
		{"N9", "Total Test Cases"},
		{"B11", "3.2 Validation Testing Results"},
		{"B12", "Traceability\nReq-ID"},
		{"C12", "Test Case\nID"},
		{"M12", "Test Result"},
		{"O12", "Track Bug ID\n(If Applicable)"},
	}
	for _, tt := range tests {
		v, err := f.GetCellValue(sheet, tt.cell)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, v, "cell %s", tt.cell)
	}

	formulas := map[string]string{
		"O5": "COUNTA(O13:O112)",
		"O6": `COUNTIF(M13:M112,"Passed")`,
		"O7": `COUNTIF(M13:M112,"Failed")`,
		"O8": `COUNTIF(M13:M112,"Not Tested")`,
		"O9": "COUNTA(C13:C112)",
	}
	for cell, expected := range formulas {
		formula, err := f.GetCellFormula(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, expected, formula, "cell %s", cell)
	}

	dvs, err := f.GetDataValidations(sheet)
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "M13:M112", dvs[0].Sqref)

	assert.Equal(t, []models.PrintArea{{SheetName: sheet, R1: 2, C1: 2, R2: 112, C2: 16}}, PrintAreas(f))
}

// recordingDoc notes every cell written through SetCellValue.
type recordingDoc struct {
	*excelize.File
	written map[string]any
}

func (d *recordingDoc) SetCellValue(sheet, cell string, value any) error {
	d.written[cell] = value
	return d.File.SetCellValue(sheet, cell, value)
}

func TestSetupWritesEmptyResults(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	doc := &recordingDoc{File: f, written: make(map[string]any)}

	table := Default()
	require.NoError(t, table.Setup(doc, f.GetSheetName(f.GetActiveSheetIndex())))

	for row := table.StartRow; row <= table.EndRow(); row++ {
		cell := fmt.Sprintf("M%d", row)
		v, ok := doc.written[cell]
		require.True(t, ok, "%s not written", cell)
		assert.Equal(t, "", v, cell)
	}
	_, ok := doc.written[fmt.Sprintf("M%d", table.EndRow()+1)]
	assert.False(t, ok)
}

func TestNextAvailableRow(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	row, err := table.NextAvailableRow(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, 13, row)

	_, err = table.WriteRow(f, sheet, row, testCase("TC-1"))
	require.NoError(t, err)

	row, err = table.NextAvailableRow(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, 14, row)

	// A whitespace-only id does not occupy the row.
	require.NoError(t, f.SetCellValue(sheet, "C14", "   "))
	row, err = table.NextAvailableRow(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, 14, row)
}

func TestNextAvailableRowSkipsGaps(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	for _, r := range []int{13, 14, 16} {
		_, err := table.WriteRow(f, sheet, r, testCase(fmt.Sprintf("TC-%d", r)))
		require.NoError(t, err)
	}

	row, err := table.NextAvailableRow(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, 15, row)
}

func TestNextAvailableRowFullWindow(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	for r := table.StartRow; r <= table.EndRow(); r++ {
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("C%d", r), fmt.Sprintf("TC-%d", r)))
	}

	row, err := table.NextAvailableRow(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, table.StartRow+table.Capacity, row)
}

func TestNextAvailableRowProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := excelize.NewFile()
		defer f.Close()
		table := Default()
		if err := table.Setup(f, f.GetSheetName(f.GetActiveSheetIndex())); err != nil {
			rt.Fatal(err)
		}

		taken := rapid.SliceOfDistinct(rapid.IntRange(table.StartRow, table.EndRow()), func(r int) int { return r }).Draw(rt, "taken")
		occupied := make(map[int]bool, len(taken))
		for _, r := range taken {
			occupied[r] = true
			if err := f.SetCellValue(table.SheetName, fmt.Sprintf("C%d", r), fmt.Sprintf("TC-%d", r)); err != nil {
				rt.Fatal(err)
			}
		}

		want := table.EndRow() + 1
		for r := table.StartRow; r <= table.EndRow(); r++ {
			if !occupied[r] {
				want = r
				break
			}
		}

		got, err := table.NextAvailableRow(f, table.SheetName)
		if err != nil {
			rt.Fatal(err)
		}
		if got != want {
			rt.Fatalf("next row %d, want %d (taken %v)", got, want, taken)
		}
	})
}

func TestNextAvailableRowOtherSheet(t *testing.T) {
	f, table := newSheet(t)
	_, err := f.NewSheet(UnitSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(UnitSheet, "C13", "TC-1"))

	row, err := table.NextAvailableRow(f, UnitSheet)
	require.NoError(t, err)
	assert.Equal(t, table.StartRow, row)
}

func TestWriteRowHeight(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	values := testCase("TC-1")
	values[models.FieldSteps] = "1. a\n2. b\n3. c"
	height, err := table.WriteRow(f, sheet, 13, values)
	require.NoError(t, err)
	assert.Equal(t, 45.0, height)

	got, err := f.GetRowHeight(sheet, 13)
	require.NoError(t, err)
	assert.Equal(t, 45.0, got)

	height, err = table.WriteRow(f, sheet, 14, testCase("TC-2"))
	require.NoError(t, err)
	assert.Equal(t, LineHeight, height)

	values[models.FieldRemarks] = strings.Repeat("x\n", 40)
	height, err = table.WriteRow(f, sheet, 15, values)
	require.NoError(t, err)
	assert.Equal(t, MaxRowHeight, height)
}

func TestRowHeight(t *testing.T) {
	tests := []struct {
		lines    int
		expected float64
	}{
		{0, 15},
		{1, 15},
		{2, 30},
		{27, 405},
		{28, 409},
	}
	for _, tt := range tests {
		if got := RowHeight(tt.lines); got != tt.expected {
			t.Errorf("RowHeight(%d) = %v, expected %v", tt.lines, got, tt.expected)
		}
	}
}

func TestFindRow(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	for i, id := range []string{"TC-1", "TC-42", "TC-42"} {
		_, err := table.WriteRow(f, sheet, table.StartRow+i, testCase(id))
		require.NoError(t, err)
	}

	row, err := table.FindRow(f, sheet, "TC-42")
	require.NoError(t, err)
	assert.Equal(t, 14, row)

	_, err = table.FindRow(f, sheet, "tc-42")
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestRows(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	for _, r := range []int{13, 15} {
		_, err := table.WriteRow(f, sheet, r, testCase(fmt.Sprintf("TC-%d", r)))
		require.NoError(t, err)
	}

	var rows []int
	for r, err := range table.Rows(f, sheet) {
		require.NoError(t, err)
		rows = append(rows, r.Index)
	}
	assert.Equal(t, []int{13, 15}, rows)

	// Each range starts over and sees new writes.
	_, err := table.WriteRow(f, sheet, 14, testCase("TC-14"))
	require.NoError(t, err)
	records, err := table.Records(f, sheet)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "TC-14", records[1].TestCaseID)
	assert.Equal(t, "Verify TC-14", records[1].Objective)
	assert.Equal(t, "", records[1].Remarks)

	// Breaking early stops the scan.
	count := 0
	for range table.Rows(f, sheet) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestRowsMissingSheet(t *testing.T) {
	f, table := newSheet(t)

	_, err := table.Records(f, "Nope")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	results := []models.TestResult{models.ResultPassed, models.ResultPassed, models.ResultFailed, "Bogus", models.ResultNotTested}
	for i, r := range results {
		values := testCase(fmt.Sprintf("TC-%d", i))
		values[models.FieldTestResult] = string(r)
		if r == models.ResultFailed {
			values[models.FieldTrackBugID] = "BUG-7"
		}
		_, err := table.WriteRow(f, sheet, table.StartRow+i, values)
		require.NoError(t, err)
	}

	s, err := table.Summarize(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, models.Summary{
		SheetName: sheet,
		Total:     5,
		Passed:    2,
		Failed:    1,
		NotTested: 2,
		WithBugs:  1,
		NextRow:   18,
	}, s)
}

func TestDetailsRoundTrip(t *testing.T) {
	f, table := newSheet(t)
	sheet := table.SheetName

	before, err := ReadDetails(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, DatePlaceholder, before.TestStartDate)
	assert.Equal(t, "", before.ProjectName)

	d := models.Details{
		ProjectName:   "Braking ECU (PRJ-9)",
		Tester:        "QA Team",
		TestStartDate: "01-Oct-2026",
	}
	require.NoError(t, WriteDetails(f, sheet, d))

	after, err := ReadDetails(f, sheet)
	require.NoError(t, err)
	assert.Equal(t, d, after)

	v, err := f.GetCellValue(sheet, "E5")
	require.NoError(t, err)
	assert.Equal(t, "Braking ECU (PRJ-9)", v)
}

func TestParsePrintAreaReference(t *testing.T) {
	tests := []struct {
		ref      string
		expected []models.PrintArea
	}{
		{"Sheet1!$A$1:$D$10", []models.PrintArea{{SheetName: "Sheet1", R1: 1, C1: 1, R2: 10, C2: 4}}},
		{"'SW Unit Testing'!$B$2:$P$112", []models.PrintArea{{SheetName: "SW Unit Testing", R1: 2, C1: 2, R2: 112, C2: 16}}},
		{"'O''Brien'!$A$1:$B$2", []models.PrintArea{{SheetName: "O'Brien", R1: 1, C1: 1, R2: 2, C2: 2}}},
		{"S!$A$1:$B$2,S!$D$1:$E$2", []models.PrintArea{
			{SheetName: "S", R1: 1, C1: 1, R2: 2, C2: 2},
			{SheetName: "S", R1: 1, C1: 4, R2: 2, C2: 5},
		}},
		{"$A$1:$B$2", nil},
		{"S!$A$1", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parsePrintAreaReference(tt.ref), tt.ref)
	}
}
