// ABOUTME: Tests for spreadsheet export
// ABOUTME: Reads the workbook back with excelize and checks its rows

package storage

import (
	"bytes"
	"math"
	"testing"

	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	return rows
}

func TestExportToXLSX(t *testing.T) {
	db := testDB(t)

	c := sampleConversion(0)
	if err := db.CreateConversion(c); err != nil {
		t.Fatalf("failed to create conversion: %v", err)
	}

	data, err := ExportToXLSX(db)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	rows := readRows(t, data)
	if len(rows) != 2 {
		t.Fatalf("expected header and 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "id" || rows[0][len(rows[0])-1] != "created_at" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != c.ID.String() {
		t.Errorf("expected id %s, got %s", c.ID, rows[1][0])
	}
	if rows[1][1] != "legacy" {
		t.Errorf("expected model legacy, got %s", rows[1][1])
	}
	if rows[1][8] != "7000" {
		t.Errorf("expected eci_x_km 7000, got %s", rows[1][8])
	}
}

func TestExportToXLSX_Empty(t *testing.T) {
	db := testDB(t)

	data, err := ExportToXLSX(db)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	rows := readRows(t, data)
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}

func TestCellValue_NonFinite(t *testing.T) {
	if v, ok := cellValue(math.NaN()).(string); !ok || v != "NaN" {
		t.Errorf("expected NaN text, got %v", cellValue(math.NaN()))
	}
	if v, ok := cellValue(math.Inf(-1)).(string); !ok || v != "-Inf" {
		t.Errorf("expected -Inf text, got %v", cellValue(math.Inf(-1)))
	}
	if v, ok := cellValue(1.5).(float64); !ok || v != 1.5 {
		t.Errorf("expected numeric 1.5, got %v", cellValue(1.5))
	}
}
