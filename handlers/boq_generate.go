package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// HandleBOQGenerate returns a handler that runs the full pipeline: schedule
// items to takeoff lines to aggregated BOQ lines. With ?run=<key> the BOQ is
// also attached to the matching calc run. Partial failures surface in the
// errors and warnings arrays; only a run that produces no lines at all while
// reporting errors is treated as failed.
func HandleBOQGenerate(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		items, err := loadScheduleItems(app, project.Id)
		if err != nil {
			log.Printf("boq_generate: could not load schedule items: %v", err)
			return respondError(e, err)
		}

		calc := services.CalculateScheduleItems(items)
		boq := services.GenerateBOQ(calc.Lines, catalog)

		errors := append([]string{}, calc.Errors...)
		errors = append(errors, boq.Errors...)
		warnings := append([]string{}, boq.Warnings...)

		if runKey := strings.TrimSpace(e.Request.URL.Query().Get("run")); runKey != "" {
			warning, err := services.AttachBOQToCalcRun(app, project.Id, runKey, boq.Lines, boq.Summary)
			if err != nil {
				log.Printf("boq_generate: could not attach to calc run: %v", err)
				return respondError(e, err)
			}
			if warning != "" {
				warnings = append(warnings, warning)
			}
		}

		status := http.StatusOK
		if len(boq.Lines) == 0 && len(errors) > 0 {
			status = http.StatusUnprocessableEntity
		}

		return e.JSON(status, map[string]any{
			"project":  project.Id,
			"boqLines": boq.Lines,
			"summary":  boq.Summary,
			"warnings": warnings,
			"errors":   errors,
		})
	}
}
