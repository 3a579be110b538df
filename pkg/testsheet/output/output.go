// Package output renders service results as JSON or as the plain-text
// messages returned to tool clients.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// RecordsText lists records one per line, each as its labeled fields.
func RecordsText(sheet string, records []models.Record) (string, error) {
	if len(records) == 0 {
		return fmt.Sprintf("No test cases found in sheet '%s'.", sheet), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d test cases:", len(records))
	for _, r := range records {
		data, err := json.Marshal(r.Labeled())
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\nRow %d: %s", r.Row, data)
	}
	return b.String(), nil
}

// SummaryText renders a summary as a short report.
func SummaryText(s models.Summary) string {
	return fmt.Sprintf(`Test Case Summary for '%s':
Total Test Cases: %d
Passed: %d
Failed: %d
Not Tested: %d
Test Cases with Bugs: %d
Next Available Row: %d`,
		s.SheetName, s.Total, s.Passed, s.Failed, s.NotTested, s.WithBugs, s.NextRow)
}

// InfoText renders workbook information.
func InfoText(info models.WorkbookInfo, validationSheet string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workbook '%s' information:\n", info.ID)
	fmt.Fprintf(&b, "  Sheets: %s", strings.Join(info.Sheets, ", "))
	if info.TestCount != nil && info.NextRow != nil {
		fmt.Fprintf(&b, "\n  Test Cases in %s: %d", validationSheet, *info.TestCount)
		fmt.Fprintf(&b, "\n  Next Available Row: %d", *info.NextRow)
	}
	for _, a := range info.PrintAreas {
		fmt.Fprintf(&b, "\n  Print Area: %s R%dC%d:R%dC%d", a.SheetName, a.R1, a.C1, a.R2, a.C2)
	}
	return b.String()
}
