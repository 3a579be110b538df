package layout

import (
	"iter"
	"strings"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/textfmt"
)

// Row heights are in points. Excel refuses rows taller than 409.
const (
	LineHeight   = 15.0
	MaxRowHeight = 409.0
)

// Row is one occupied row of the data window.
type Row struct {
	// Index is the 1-based sheet row.
	Index  int
	Values [models.FieldCount]string
}

// Record converts the row into a test case record.
func (r Row) Record() models.Record {
	return models.Record{Row: r.Index, TestCase: models.TestCaseFromValues(r.Values)}
}

// NextAvailableRow returns the first row of the window whose Test Case ID
// is blank. When every row is taken it returns the row just past the
// window; callers may write there, it is simply outside the managed range.
//
// Sheets other than the table's own sheet always get StartRow.
func (t Table) NextAvailableRow(doc Document, sheet string) (int, error) {
	if !t.IsCanonical(sheet) {
		return t.StartRow, nil
	}
	col := ColumnOf(models.FieldTestCaseID)
	for row := t.StartRow; row <= t.EndRow(); row++ {
		v, err := doc.GetCellValue(sheet, cellName(col, row))
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(v) == "" {
			return row, nil
		}
	}
	return t.EndRow() + 1, nil
}

// WriteRow stores values in row and sizes the row to its tallest cell,
// returning the height that was set.
func (t Table) WriteRow(doc Document, sheet string, row int, values [models.FieldCount]string) (float64, error) {
	maxLines := 1
	for i, v := range values {
		if err := doc.SetCellValue(sheet, cellName(FirstColumn+i, row), v); err != nil {
			return 0, err
		}
		maxLines = max(maxLines, textfmt.LineCount(v))
	}

	style, err := doc.NewStyle(dataStyle())
	if err != nil {
		return 0, err
	}
	first := cellName(FirstColumn, row)
	last := cellName(FirstColumn+models.FieldCount-1, row)
	if err := doc.SetCellStyle(sheet, first, last, style); err != nil {
		return 0, err
	}

	height := RowHeight(maxLines)
	if err := doc.SetRowHeight(sheet, row, height); err != nil {
		return 0, err
	}
	return height, nil
}

// RowHeight is the display height for a row showing lines lines of text.
func RowHeight(lines int) float64 {
	return min(max(LineHeight, float64(lines)*LineHeight), MaxRowHeight)
}

// SetField overwrites a single cell of row.
func (t Table) SetField(doc Document, sheet string, row int, f models.Field, value string) error {
	return doc.SetCellValue(sheet, cellName(ColumnOf(f), row), value)
}

// FindRow returns the first window row whose Test Case ID equals id exactly.
func (t Table) FindRow(doc Document, sheet, id string) (int, error) {
	col := ColumnOf(models.FieldTestCaseID)
	for row := t.StartRow; row <= t.EndRow(); row++ {
		v, err := doc.GetCellValue(sheet, cellName(col, row))
		if err != nil {
			return 0, err
		}
		if v == id {
			return row, nil
		}
	}
	return 0, ErrRowNotFound
}

// Rows yields every occupied row of the window in ascending order. Each
// iteration reads the sheet afresh. A read error is yielded once and ends
// the sequence.
func (t Table) Rows(doc Document, sheet string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		idCol := ColumnOf(models.FieldTestCaseID)
		for row := t.StartRow; row <= t.EndRow(); row++ {
			id, err := doc.GetCellValue(sheet, cellName(idCol, row))
			if err != nil {
				yield(Row{}, err)
				return
			}
			if strings.TrimSpace(id) == "" {
				continue
			}

			r := Row{Index: row}
			for i := range r.Values {
				v, err := doc.GetCellValue(sheet, cellName(FirstColumn+i, row))
				if err != nil {
					yield(Row{}, err)
					return
				}
				r.Values[i] = v
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Records collects Rows into test case records.
func (t Table) Records(doc Document, sheet string) ([]models.Record, error) {
	var records []models.Record
	for r, err := range t.Rows(doc, sheet) {
		if err != nil {
			return nil, err
		}
		records = append(records, r.Record())
	}
	return records, nil
}

// Summarize tallies the occupied rows of sheet in one pass.
func (t Table) Summarize(doc Document, sheet string) (models.Summary, error) {
	s := models.Summary{SheetName: sheet}
	for r, err := range t.Rows(doc, sheet) {
		if err != nil {
			return models.Summary{}, err
		}
		s.Total++
		switch models.TestResult(r.Values[models.FieldTestResult]) {
		case models.ResultPassed:
			s.Passed++
		case models.ResultFailed:
			s.Failed++
		default:
			s.NotTested++
		}
		if strings.TrimSpace(r.Values[models.FieldTrackBugID]) != "" {
			s.WithBugs++
		}
	}

	next, err := t.NextAvailableRow(doc, sheet)
	if err != nil {
		return models.Summary{}, err
	}
	s.NextRow = next
	return s, nil
}
