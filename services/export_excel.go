package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateBOQExcel creates an Excel workbook from the given export data and
// returns the file contents as a byte slice.
func GenerateBOQExcel(data BOQExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "BOQ"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through E).
	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 14, 52, 10, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	partStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E8E8E8"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create part style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	qtyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "right"},
		NumFmt:    4, // #,##0.00
	})
	if err != nil {
		return nil, fmt.Errorf("create qty style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	// ── Title block ─────────────────────────────────────────────────────

	rowNum := 1
	if err := f.SetCellValue(sheetName, "A1", "Bill of Quantities — "+data.ProjectName); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}
	rowNum++

	if data.ReferenceNumber != "" {
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetCellValue(sheetName, cell, "Reference: "+data.ReferenceNumber); err != nil {
			return nil, fmt.Errorf("set reference: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, subtitleStyle); err != nil {
			return nil, fmt.Errorf("style reference: %w", err)
		}
		rowNum++
	}

	cell := fmt.Sprintf("A%d", rowNum)
	if err := f.SetCellValue(sheetName, cell, "Generated: "+data.GeneratedDate); err != nil {
		return nil, fmt.Errorf("set date: %w", err)
	}
	if err := f.SetCellStyle(sheetName, cell, cell, subtitleStyle); err != nil {
		return nil, fmt.Errorf("style date: %w", err)
	}
	rowNum += 2

	// ── Column headers ──────────────────────────────────────────────────

	headers := []string{"#", "Pay Item", "Description", "Unit", "Quantity"}
	for i, h := range headers {
		hCell := fmt.Sprintf("%s%d", columns[i], rowNum)
		if err := f.SetCellValue(sheetName, hCell, h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", h, err)
		}
	}
	if err := f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), headerStyle); err != nil {
		return nil, fmt.Errorf("style headers: %w", err)
	}
	rowNum++

	// ── Data rows ───────────────────────────────────────────────────────

	for _, r := range data.Rows {
		first := fmt.Sprintf("A%d", rowNum)
		last := fmt.Sprintf("%s%d", lastCol, rowNum)

		if r.Level == 0 {
			if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), r.Description); err != nil {
				return nil, fmt.Errorf("set part row: %w", err)
			}
			if err := f.SetCellStyle(sheetName, first, last, partStyle); err != nil {
				return nil, fmt.Errorf("style part row: %w", err)
			}
			rowNum++
			continue
		}

		values := []any{r.Index, r.ItemNumber, r.Description, r.Unit}
		for i, v := range values {
			if err := f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], rowNum), v); err != nil {
				return nil, fmt.Errorf("set line row: %w", err)
			}
		}
		qtyCell := fmt.Sprintf("E%d", rowNum)
		if err := f.SetCellValue(sheetName, qtyCell, r.Quantity); err != nil {
			return nil, fmt.Errorf("set quantity: %w", err)
		}
		if err := f.SetCellStyle(sheetName, first, fmt.Sprintf("D%d", rowNum), lineStyle); err != nil {
			return nil, fmt.Errorf("style line row: %w", err)
		}
		if err := f.SetCellStyle(sheetName, qtyCell, qtyCell, qtyStyle); err != nil {
			return nil, fmt.Errorf("style quantity: %w", err)
		}
		rowNum++
	}

	// ── Summary ─────────────────────────────────────────────────────────

	rowNum++
	labelCell := fmt.Sprintf("C%d", rowNum)
	if err := f.SetCellValue(sheetName, labelCell, "Total BOQ Lines"); err != nil {
		return nil, fmt.Errorf("set summary label: %w", err)
	}
	if err := f.SetCellStyle(sheetName, labelCell, labelCell, summaryLabelStyle); err != nil {
		return nil, fmt.Errorf("style summary label: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), data.TotalLines); err != nil {
		return nil, fmt.Errorf("set summary value: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// thinBorders returns a uniform thin border on all four sides.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#999999", Style: 1},
		{Type: "right", Color: "#999999", Style: 1},
		{Type: "top", Color: "#999999", Style: 1},
		{Type: "bottom", Color: "#999999", Style: 1},
	}
}
