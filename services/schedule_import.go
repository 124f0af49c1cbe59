package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// scheduleImportHeaders is the expected column order of the schedule item
// import workbook. Matches the template produced by
// GenerateScheduleImportTemplate.
var scheduleImportHeaders = []string{
	"Category",
	"DPWH Item Number",
	"Description",
	"Unit",
	"Quantity",
	"Basis",
	"Tags",
}

// ImportRowError represents a validation failure on a specific workbook row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ScheduleImportResult holds parsed schedule item drafts plus per-row
// errors. Bad rows are skipped; good rows are still imported.
type ScheduleImportResult struct {
	Items  []ScheduleItem   `json:"items"`
	Errors []ImportRowError `json:"errors"`
}

// ParseScheduleImport reads an uploaded schedule item workbook and returns
// the parsed items with per-row validation errors. Each item's unit must
// match the referenced catalog item's unit; unknown categories and catalog
// numbers are row errors, not hard failures.
func ParseScheduleImport(r io.Reader, catalog *Catalog) (*ScheduleImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Field: "file", Message: "workbook has no header row"}
	}

	result := &ScheduleImportResult{
		Items:  []ScheduleItem{},
		Errors: []ImportRowError{},
	}

	for i, cells := range rows[1:] {
		rowNum := i + 2 // 1-indexed plus header row
		if isBlankRow(cells) {
			continue
		}

		item, rowErrs := parseScheduleRow(rowNum, cells, catalog)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// parseScheduleRow validates one data row against the catalog.
func parseScheduleRow(rowNum int, cells []string, catalog *Catalog) (ScheduleItem, []ImportRowError) {
	var errs []ImportRowError

	category := strings.TrimSpace(cellAt(cells, 0))
	if !ValidCategory(category) {
		errs = append(errs, ImportRowError{
			Row: rowNum, Field: "Category",
			Message: fmt.Sprintf("unknown category %q", category),
		})
	}

	itemNumber := strings.TrimSpace(cellAt(cells, 1))
	if itemNumber == "" {
		errs = append(errs, ImportRowError{
			Row: rowNum, Field: "DPWH Item Number",
			Message: "DPWH item number is required",
		})
	}

	unit := strings.TrimSpace(cellAt(cells, 3))
	if unit == "" {
		errs = append(errs, ImportRowError{
			Row: rowNum, Field: "Unit",
			Message: "unit is required",
		})
	}

	if itemNumber != "" {
		catItem, found := catalog.Lookup(itemNumber)
		if !found {
			errs = append(errs, ImportRowError{
				Row: rowNum, Field: "DPWH Item Number",
				Message: fmt.Sprintf("catalog item %q not found", itemNumber),
			})
		} else if unit != "" && unit != catItem.Unit {
			errs = append(errs, ImportRowError{
				Row: rowNum, Field: "Unit",
				Message: fmt.Sprintf("unit %q does not match catalog unit %q for item %q", unit, catItem.Unit, itemNumber),
			})
		}
	}

	qtyRaw := strings.TrimSpace(cellAt(cells, 4))
	qty, err := strconv.ParseFloat(qtyRaw, 64)
	if err != nil {
		errs = append(errs, ImportRowError{
			Row: rowNum, Field: "Quantity",
			Message: fmt.Sprintf("invalid quantity %q", qtyRaw),
		})
	} else if qty < 0 {
		errs = append(errs, ImportRowError{
			Row: rowNum, Field: "Quantity",
			Message: fmt.Sprintf("negative quantity %v", qty),
		})
	}

	if len(errs) > 0 {
		return ScheduleItem{}, errs
	}

	item := ScheduleItem{
		Category:       Category(category),
		DPWHItemNumber: itemNumber,
		Description:    strings.TrimSpace(cellAt(cells, 2)),
		Unit:           unit,
		Quantity:       qty,
		Basis:          strings.TrimSpace(cellAt(cells, 5)),
	}
	if tagsRaw := strings.TrimSpace(cellAt(cells, 6)); tagsRaw != "" {
		for _, tag := range strings.Split(tagsRaw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				item.Tags = append(item.Tags, tag)
			}
		}
	}
	return item, nil
}

// GenerateScheduleImportTemplate builds the downloadable import workbook:
// a header row, one example row, and a category dropdown on the data rows.
func GenerateScheduleImportTemplate(catalog *Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule Items"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	widths := []float64{16, 18, 44, 10, 12, 36, 24}
	for i, header := range scheduleImportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		cell := colName + "1"
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("set header %q: %w", header, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %q: %w", header, err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", colName, err)
		}
	}

	// Example row showing the expected format.
	example := []any{
		"earthwork", "803(1)a", "Structure Excavation (Common Soil)",
		"m3", 120.5, "foundation plan sheet S-2", "phase1, substructure",
	}
	for i, v := range example {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheetName, colName+"2", v); err != nil {
			return nil, fmt.Errorf("set example cell: %w", err)
		}
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = "A2:A500"
	if err := dv.SetDropList(CategoryValues()); err != nil {
		return nil, fmt.Errorf("set category drop list: %w", err)
	}
	if err := f.AddDataValidation(sheetName, dv); err != nil {
		return nil, fmt.Errorf("add data validation: %w", err)
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true,
		YSplit: 1,
		XSplit: 0,
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
