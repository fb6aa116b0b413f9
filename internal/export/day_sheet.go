// Package export renders the admin spreadsheet of a day's appointments.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

const SheetName = "Appointments"

var headers = []string{"Time", "Service", "Status", "Customer", "Email", "Booked at", "Attendance recorded"}

// FileName is the download name of a day export.
func FileName(date string) string {
	return fmt.Sprintf("appointments_%s.xlsx", date)
}

// WriteDay writes one sheet with a title row, a header row and one row
// per appointment in the given order.
func WriteDay(w io.Writer, date string, apps []dto.AppointmentListDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	_ = f.SetCellValue(SheetName, "A1", fmt.Sprintf("Appointments of %s", date))
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(SheetName, "A1", lastCol+"1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(SheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(SheetName, cell, h)
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	for i, ap := range apps {
		row := []any{
			ap.TimeSlot,
			ap.Type,
			ap.Status,
			ap.CustomerName,
			ap.CustomerEmail,
			ap.BookedAt.Format("2006-01-02 15:04"),
			ap.AttendanceRecorded,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+3, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "C", 14)
	_ = f.SetColWidth(SheetName, "D", "E", 28)
	_ = f.SetColWidth(SheetName, "F", "G", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
