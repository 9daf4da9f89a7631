package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

var headers = []string{"ID", "Вещь", "Арендатор", "Email", "Начало", "Окончание", "Статус"}

// statusFill задает цвет заливки строки по статусу бронирования
var statusFill = map[models.BookingStatus]string{
	models.StatusWaiting:  "#FFF2CC",
	models.StatusApproved: "#E2EFDA",
	models.StatusRejected: "#F8CBAD",
}

// ErrTooManyRows is returned when the list exceeds the configured row cap.
var ErrTooManyRows = errors.New("too many bookings to export")

type Exporter struct {
	maxRows  int
	location *time.Location
}

func NewExporter(maxRows int, location *time.Location) *Exporter {
	if location == nil {
		location = time.UTC
	}
	return &Exporter{maxRows: maxRows, location: location}
}

// WriteBookings renders bookings into a single-sheet workbook in the given order.
func (e *Exporter) WriteBookings(w io.Writer, title string, bookings []*models.Booking) error {
	if e.maxRows > 0 && len(bookings) > e.maxRows {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRows, len(bookings), e.maxRows)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := models.ExportSheetName
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// Заголовок выгрузки
	_ = f.SetCellValue(sheetName, "A1", title)
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	if err := e.writeHeaders(f, sheetName); err != nil {
		return err
	}
	if err := e.writeRows(f, sheetName, bookings); err != nil {
		return err
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "D", 25)
	_ = f.SetColWidth(sheetName, "E", "G", 20)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeHeaders(f *excelize.File, sheetName string) error {
	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
	return nil
}

func (e *Exporter) writeRows(f *excelize.File, sheetName string, bookings []*models.Booking) error {
	styles := make(map[models.BookingStatus]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("error creating status style: %w", err)
		}
		styles[status] = id
	}

	for i, b := range bookings {
		row := i + 3
		var itemName, bookerName, bookerEmail string
		if b.Item != nil {
			itemName = b.Item.Name
		}
		if b.Booker != nil {
			bookerName = b.Booker.Name
			bookerEmail = b.Booker.Email
		}

		values := []any{
			b.ID,
			itemName,
			bookerName,
			bookerEmail,
			b.Start.In(e.location).Format("02.01.2006 15:04"),
			b.End.In(e.location).Format("02.01.2006 15:04"),
			b.Status.String(),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}

		if style, ok := styles[b.Status]; ok {
			end, _ := excelize.CoordinatesToCellName(len(headers), row)
			_ = f.SetCellStyle(sheetName, start, end, style)
		}
	}
	return nil
}
