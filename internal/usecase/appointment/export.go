package appointment

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const exportSheet = "Appointments"

var ErrInvalidRange = httperr.NewBusiness(
	"invalid_range",
	"Provide from and to as YYYY-MM-DD with from <= to.",
)

var exportHeader = []string{
	"ID", "Date", "Slot", "Status", "Barber", "Client", "Client email", "Services", "Total",
}

type ExportAppointments struct {
	repo domain.Repository
}

func NewExportAppointments(repo domain.Repository) *ExportAppointments {
	return &ExportAppointments{repo: repo}
}

// Execute renders appointments dated from..to (inclusive) as an xlsx file.
func (uc *ExportAppointments) Execute(
	ctx context.Context,
	from string,
	to string,
) ([]byte, error) {

	if !availability.ValidDate(from) || !availability.ValidDate(to) || from > to {
		return nil, ErrInvalidRange
	}

	apps, err := uc.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
		_ = f.SetCellStyle(exportSheet, cell, cell, style)
	}

	for r, ap := range apps {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.Name)
		}

		row := []any{
			ap.ID,
			ap.Date,
			ap.Slot,
			string(ap.Status),
			ap.Barber.FullName(),
			ap.Client.FullName(),
			ap.Client.Email,
			strings.Join(names, ", "),
			domain.TotalPrice(ap.Services),
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "D", 12)
	_ = f.SetColWidth(exportSheet, "E", "H", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
