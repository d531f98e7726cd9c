package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SalesCSV is an eleven row order export. Region has two values so it stays
// below the categorical ratio; unit_price * qty sums to A=20 and B=15.
const SalesCSV = `Order Date,Region,Unit Price,Qty,SKU
01/15/2024,A,$10,2,S-1
01/20/2024,B,5,3,S-2
02/01/2024,A,0,0,S-3
02/02/2024,B,0,0,S-4
02/03/2024,A,0,0,S-5
02/04/2024,B,0,0,S-6
02/05/2024,A,0,0,S-7
02/06/2024,B,0,0,S-8
02/07/2024,A,0,0,S-9
02/08/2024,B,0,0,S-10
02/09/2024,A,N/A,0,S-11
`

// WriteFile writes content under a fresh temp dir and returns its path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// Workbook builds an xlsx document whose first sheet holds rows. Nil cells
// are left empty.
func Workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("invalid cell %d,%d: %v", c, r, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("failed to set %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf
}
