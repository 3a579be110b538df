package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// SetPrintArea defines the print range of sheet as the title through the
// last window row, columns B to P.
func (t Table) SetPrintArea(doc Document, sheet string) error {
	return doc.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: fmt.Sprintf("'%s'!$B$2:$P$%d", strings.ReplaceAll(sheet, "'", "''"), t.EndRow()),
		Scope:    sheet,
	})
}

// PrintAreas lists the print ranges defined in doc, ordered by sheet name.
func PrintAreas(doc Document) []models.PrintArea {
	var result []models.PrintArea
	for _, dn := range doc.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		result = append(result, parsePrintAreaReference(dn.RefersTo)...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SheetName < result[j].SheetName
	})
	return result
}

// parsePrintAreaReference parses 'Sheet'!$A$1:$D$10 or Sheet!$A$1:$D$10,
// possibly several separated by commas.
func parsePrintAreaReference(ref string) []models.PrintArea {
	var areas []models.PrintArea
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		sheet = strings.ReplaceAll(sheet, "''", "'")
		if area, ok := parseRange(part[idx+1:]); ok {
			area.SheetName = sheet
			areas = append(areas, area)
		}
	}
	return areas
}

func parseRange(rangeStr string) (models.PrintArea, bool) {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return models.PrintArea{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.PrintArea{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.PrintArea{}, false
	}
	return models.PrintArea{R1: r1, C1: c1, R2: r2, C2: c2}, true
}
