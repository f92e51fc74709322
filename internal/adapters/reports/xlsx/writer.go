// Package xlsx exporta reportes como planillas Excel.
package xlsx

import (
	"fmt"
	"io"

	"doggy-daycare/internal/domain/reports"
	"doggy-daycare/internal/platform/dates"

	"github.com/xuri/excelize/v2"
)

const (
	sheetOccupancy = "Occupancy"
	sheetRevenue   = "Revenue"
	sheetPayments  = "Payments"
)

// Writer implementa reports.SpreadsheetWriter.
type Writer struct{}

func New() *Writer { return &Writer{} }

func (Writer) WriteOccupancy(w io.Writer, locationName string, rows []reports.OccupancyRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetOccupancy); err != nil {
		return err
	}
	if err := setRow(f, sheetOccupancy, 1, "Location", locationName); err != nil {
		return err
	}
	if err := setRow(f, sheetOccupancy, 3, "Date", "Pets"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheetOccupancy, i+4, r.ServiceDate.Format(dates.DayLayout), r.Pets); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func (Writer) WriteRevenue(w io.Writer, rev reports.Revenue) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRevenue); err != nil {
		return err
	}
	summary := [][]any{
		{"From", rev.From.Format(dates.DayLayout)},
		{"To", rev.To.Format(dates.DayLayout)},
		{"Revenue", rev.Revenue.InexactFloat64()},
		{"GST collected", rev.GSTCollected.InexactFloat64()},
	}
	if rev.LocationID != nil {
		summary = append(summary, []any{"Location", *rev.LocationID})
	}
	for i, row := range summary {
		if err := setRow(f, sheetRevenue, i+1, row...); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetPayments); err != nil {
		return err
	}
	if err := setRow(f, sheetPayments, 1, "Method", "Total"); err != nil {
		return err
	}
	for i, p := range rev.Payments {
		if err := setRow(f, sheetPayments, i+2, p.Method, p.Total.InexactFloat64()); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
