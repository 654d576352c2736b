// ABOUTME: Spreadsheet export of recorded conversions
// ABOUTME: Writes one row per conversion into an .xlsx workbook

package storage

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the worksheet holding the conversion table.
const xlsxSheet = "Conversions"

var xlsxHeader = []interface{}{
	"id", "model", "year", "month", "day", "hour", "minute", "second",
	"eci_x_km", "eci_y_km", "eci_z_km", "ecef_x_km", "ecef_y_km", "ecef_z_km",
	"gmst_rad", "julian_date", "created_at",
}

// cellValue keeps finite numbers numeric. Spreadsheet cells cannot hold NaN
// or infinities, so those are written as text.
func cellValue(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

// ExportToXLSX exports all conversions, newest first, as an Excel workbook.
func ExportToXLSX(repo Repository) ([]byte, error) {
	conversions, err := repo.ListConversions(0)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &xlsxHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, c := range conversions {
		row := []interface{}{c.ID.String(), c.Model}
		for _, v := range []float64{
			c.Epoch.Year, c.Epoch.Month, c.Epoch.Day, c.Epoch.Hour, c.Epoch.Minute, c.Epoch.Second,
			c.ECI.X, c.ECI.Y, c.ECI.Z,
			c.Output.X, c.Output.Y, c.Output.Z,
			c.GMST, c.JulianDate,
		} {
			row = append(row, cellValue(v))
		}
		row = append(row, c.CreatedAt.UTC().Format(time.RFC3339))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
