package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"shopfloor/internal/service/downtime"
	"shopfloor/internal/shift"
)

const (
	detailSheet  = "Downtime"
	summarySheet = "Summary"
)

var detailHeaders = []string{"Date", "Time", "Station", "Unit", "Cause", "Wait (min)", "Repair (min)", "Total (min)"}

// Excel renders the downtime detail report: one row per completed cycle
// and a summary sheet with the totals overall and per station.
func Excel(cycles []downtime.Cycle) ([]byte, error) {
	const op = "service.downtime.report.Excel"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	for i, name := range detailHeaders {
		f.SetCellValue(detailSheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(detailSheet, "A1", cellName(len(detailHeaders), 1), headerStyle)

	for i, c := range cycles {
		row := i + 2
		opened := c.OpenedAt().In(shift.Location)

		f.SetCellValue(detailSheet, cellName(1, row), opened.Format("02/01"))
		f.SetCellValue(detailSheet, cellName(2, row), opened.Format("15:04"))
		f.SetCellValue(detailSheet, cellName(3, row), c.StationID)
		f.SetCellValue(detailSheet, cellName(4, row), c.Unit)
		f.SetCellValue(detailSheet, cellName(5, row), c.Cause)
		f.SetCellValue(detailSheet, cellName(6, row), c.WaitMinutes)
		f.SetCellValue(detailSheet, cellName(7, row), c.RepairMinutes)
		f.SetCellValue(detailSheet, cellName(8, row), c.LostMinutes())
	}

	f.SetPanes(detailSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(detailSheet, "A", "D", 12)
	f.SetColWidth(detailSheet, "E", "E", 40)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("%s: summary sheet: %w", op, err)
	}

	summaryHeaders := []string{"Station", "Cycles", "Wait (min)", "Repair (min)", "Lost (min)"}
	for i, name := range summaryHeaders {
		f.SetCellValue(summarySheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(summarySheet, "A1", cellName(len(summaryHeaders), 1), headerStyle)

	rows := downtime.ByStation(cycles)
	rows = append(rows, downtime.StationSummary{StationID: "Total", Summary: downtime.Summarize(cycles)})
	for i, s := range rows {
		row := i + 2
		f.SetCellValue(summarySheet, cellName(1, row), s.StationID)
		f.SetCellValue(summarySheet, cellName(2, row), s.Count)
		f.SetCellValue(summarySheet, cellName(3, row), s.WaitMinutes)
		f.SetCellValue(summarySheet, cellName(4, row), s.RepairMinutes)
		f.SetCellValue(summarySheet, cellName(5, row), s.LostMinutes)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
