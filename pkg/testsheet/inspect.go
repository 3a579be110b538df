package testsheet

import (
	"fmt"
	"slices"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/layout"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/xuri/excelize/v2"
)

// Inspect reads the details, test cases and summary of one sheet of an
// xlsx file without registering it. An empty sheet means the validation
// testing sheet.
func Inspect(path, sheet string) (*models.SheetReport, error) {
	if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, path, err)
	}
	defer f.Close()

	table := layout.Default()
	if sheet == "" {
		sheet = table.SheetName
	}
	if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	details, err := layout.ReadDetails(f, sheet)
	if err != nil {
		return nil, err
	}
	records, err := table.Records(f, sheet)
	if err != nil {
		return nil, err
	}
	summary, err := table.Summarize(f, sheet)
	if err != nil {
		return nil, err
	}

	return &models.SheetReport{
		SheetName: sheet,
		Details:   details,
		Summary:   summary,
		TestCases: records,
	}, nil
}
