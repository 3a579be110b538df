package layout

import "github.com/ukaji3/testsheet-go/pkg/testsheet/models"

// The testing details block occupies rows 5 to 10. Labels sit in B and I,
// values in E and J.
const (
	detailsFirstRow    = 5
	projectLabelColumn = 2
	projectValueColumn = 5
	testLabelColumn    = 9
	testValueColumn    = 10
	detailsRowCount    = 6
)

var projectLabels = [detailsRowCount]string{
	"Project Name and ID",
	"Features to be Tested",
	"References/Input Documents with Version",
	"Common Attributes",
	"Notation for description",
	"Version of Item under test",
}

var testLabels = [detailsRowCount]string{
	"Test Environment",
	"Test Case Designer",
	"Test Case Reviewer",
	"Tester",
	"Test Start Date",
	"Test End Date",
}

// DatePlaceholder is shown in the date cells of a freshly set up sheet.
const DatePlaceholder = "dd-Mmm-yyyy"

// WriteDetails overwrites every value cell of the details block.
func WriteDetails(doc Document, sheet string, d models.Details) error {
	style, err := doc.NewStyle(detailValueStyle())
	if err != nil {
		return err
	}
	project, test := d.ProjectBlock(), d.TestBlock()
	for i := range detailsRowCount {
		row := detailsFirstRow + i
		for _, c := range []struct {
			col   int
			value string
		}{
			{projectValueColumn, project[i]},
			{testValueColumn, test[i]},
		} {
			cell := cellName(c.col, row)
			if err := doc.SetCellValue(sheet, cell, c.value); err != nil {
				return err
			}
			if err := doc.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadDetails returns the value cells of the details block as stored.
func ReadDetails(doc Document, sheet string) (models.Details, error) {
	var project, test [detailsRowCount]string
	for i := range detailsRowCount {
		row := detailsFirstRow + i
		var err error
		if project[i], err = doc.GetCellValue(sheet, cellName(projectValueColumn, row)); err != nil {
			return models.Details{}, err
		}
		if test[i], err = doc.GetCellValue(sheet, cellName(testValueColumn, row)); err != nil {
			return models.Details{}, err
		}
	}
	return models.DetailsFromBlocks(project, test), nil
}
