package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var rosterColumns = []string{"Unit ID", "User", "Email", "Status", "Allocated At"}

// rosterRow is one share-unit line in the exported workbook.
type rosterRow struct {
	UnitID      string
	UserName    string
	UserEmail   string
	Status      string
	AllocatedAt string
}

// writeRosterWorkbook renders the roster sheet for one property.
func writeRosterWorkbook(w io.Writer, sheetName string, rows []rosterRow) error {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", sheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range rosterColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheetName, cell, col)
		file.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	file.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for i, row := range rows {
		values := []interface{}{row.UnitID, row.UserName, row.UserEmail, row.Status, row.AllocatedAt}
		for j, val := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			file.SetCellValue(sheetName, cell, val)
		}
	}

	file.SetColWidth(sheetName, "A", "A", 38)
	file.SetColWidth(sheetName, "B", "C", 28)
	file.SetColWidth(sheetName, "D", "E", 16)

	return file.Write(w)
}
