package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// buildExportData runs the BOQ pipeline over the project's current schedule
// items and shapes the result for printing.
func buildExportData(app *pocketbase.PocketBase, catalog *services.Catalog, project *core.Record) (services.BOQExportData, error) {
	items, err := loadScheduleItems(app, project.Id)
	if err != nil {
		return services.BOQExportData{}, fmt.Errorf("load schedule items: %w", err)
	}

	calc := services.CalculateScheduleItems(items)
	boq := services.GenerateBOQ(calc.Lines, catalog)

	data := services.BuildBOQExport(
		project.GetString("name"),
		project.GetString("reference_number"),
		boq.Lines,
		time.Now(),
	)
	return data, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleBOQExportExcel returns a handler that generates and downloads the
// project BOQ as an Excel workbook.
func HandleBOQExportExcel(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		data, err := buildExportData(app, catalog, project)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build export data")
		}

		xlsxBytes, err := services.GenerateBOQExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.xlsx", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBOQExportPDF returns a handler that generates and downloads the
// project BOQ as a PDF document.
func HandleBOQExportPDF(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		data, err := buildExportData(app, catalog, project)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build export data")
		}

		pdfBytes, err := services.GenerateBOQPDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("BOQ_%s_%d.pdf", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
