package Reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportDailyExcel renders a daily report as an .xlsx workbook for managers
// who want the day's compliance sheet offline.
func ExportDailyExcel(report DailyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Compliance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Zone", "Task", "Limit Time", "Status", "Evidence Status",
		"Assigned Staff", "Submitted By", "Submitted At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, taskRow := range report.Rows {
		row := rowIndex + 2

		submittedAt := ""
		if taskRow.SubmittedAt != nil {
			submittedAt = taskRow.SubmittedAt.Format("2006-01-02 15:04:05")
		}

		values := []interface{}{
			taskRow.ZoneName,
			taskRow.Title,
			taskRow.LimitTime,
			taskRow.Status,
			taskRow.EvidenceStatus,
			taskRow.AssignedStaff,
			taskRow.Submitter,
			submittedAt,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}

	summaryRow := len(report.Rows) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow),
		fmt.Sprintf("Date: %s  Total: %d  Completed: %d  Pending: %d  Missed: %d",
			report.Date, report.Total, report.Completed, report.Pending, report.Missed))

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return &buf, nil
}
