package layout

import "github.com/xuri/excelize/v2"

const headerFill = "B7DEE8"

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func titleStyle() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}
}

func boldStyle() *excelize.Style {
	return &excelize.Style{Font: &excelize.Font{Bold: true}}
}

func headerStyle() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border:    thinBorder(),
	}
}

func summaryLabelStyle() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}
}

func summaryValueStyle() *excelize.Style {
	return &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}
}

func borderStyle() *excelize.Style {
	return &excelize.Style{Border: thinBorder()}
}

// dataStyle is applied to every written table cell.
func dataStyle() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Color: "000000", Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	}
}

// detailValueStyle is applied to the values of the testing details block.
func detailValueStyle() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Color: "000000", Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}
}

func applyStyle(doc Document, sheet, first, last string, s *excelize.Style) error {
	id, err := doc.NewStyle(s)
	if err != nil {
		return err
	}
	return doc.SetCellStyle(sheet, first, last, id)
}
