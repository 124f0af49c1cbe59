package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// HandleScheduleTemplate returns a handler that downloads the schedule item
// import workbook template.
func HandleScheduleTemplate(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		out, err := services.GenerateScheduleImportTemplate(catalog)
		if err != nil {
			log.Printf("schedule_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="schedule_items_template.xlsx"`)
		e.Response.Write(out)
		return nil
	}
}

// HandleScheduleImport returns a handler that imports schedule items from an
// uploaded workbook. Valid rows are saved even when other rows fail; a file
// where every row fails is a 422.
func HandleScheduleImport(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return respondError(e, &services.ValidationError{Field: "file", Message: "workbook upload is required"})
		}
		defer file.Close()

		result, err := services.ParseScheduleImport(file, catalog)
		if err != nil {
			if services.IsValidation(err) {
				return respondError(e, err)
			}
			log.Printf("schedule_import: could not parse workbook: %v", err)
			return respondError(e, &services.ValidationError{Field: "file", Message: "could not read workbook"})
		}

		if len(result.Items) == 0 && len(result.Errors) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"imported": 0,
				"errors":   result.Errors,
			})
		}

		col, err := app.FindCollectionByNameOrId("schedule_items")
		if err != nil {
			log.Printf("schedule_import: could not find collection: %v", err)
			return respondError(e, err)
		}

		imported := 0
		for i, item := range result.Items {
			record := core.NewRecord(col)
			record.Set("project", project.Id)
			record.Set("category", string(item.Category))
			record.Set("dpwh_item_number", item.DPWHItemNumber)
			record.Set("description", item.Description)
			record.Set("unit", item.Unit)
			record.Set("quantity", item.Quantity)
			record.Set("basis", item.Basis)
			record.Set("tags", item.Tags)
			record.Set("sort_order", i+1)
			if err := app.Save(record); err != nil {
				log.Printf("schedule_import: could not save row %d: %v", i+1, err)
				continue
			}
			imported++
		}

		return e.JSON(http.StatusOK, map[string]any{
			"imported": imported,
			"errors":   result.Errors,
		})
	}
}
