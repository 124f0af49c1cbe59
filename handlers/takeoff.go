package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"costestimation/services"
)

// HandleTakeoffCalculate returns a handler that folds a project's schedule
// items into takeoff lines. With ?run=<key> the lines are also stored on the
// matching calc run; a missing run downgrades to a warning.
func HandleTakeoffCalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		items, err := loadScheduleItems(app, project.Id)
		if err != nil {
			log.Printf("takeoff: could not load schedule items: %v", err)
			return respondError(e, err)
		}

		result := services.CalculateScheduleItems(items)

		// All items failed validation: nothing calculated, report as failure.
		if len(result.Lines) == 0 && len(result.Errors) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		warnings := []string{}
		if runKey := strings.TrimSpace(e.Request.URL.Query().Get("run")); runKey != "" {
			warning, err := storeTakeoffOnCalcRun(app, project.Id, runKey, result)
			if err != nil {
				log.Printf("takeoff: could not store calc run: %v", err)
				return respondError(e, err)
			}
			if warning != "" {
				warnings = append(warnings, warning)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"takeoffLines": result.Lines,
			"errors":       result.Errors,
			"summary":      result.Summary,
			"warnings":     warnings,
		})
	}
}

// storeTakeoffOnCalcRun writes a calculation result onto an existing run.
// Returns a warning string when the run does not exist.
func storeTakeoffOnCalcRun(app *pocketbase.PocketBase, projectID, runKey string, result services.ScheduleCalcResult) (string, error) {
	runs, err := app.FindRecordsByFilter(
		"calc_runs",
		"project = {:project} && run_key = {:key}",
		"", 1, 0,
		map[string]any{"project": projectID, "key": runKey},
	)
	if err != nil || len(runs) == 0 {
		return "calc run \"" + runKey + "\" not found; takeoff lines were not stored", nil
	}

	run := runs[0]
	run.Set("takeoff_lines", result.Lines)
	run.Set("calc_errors", result.Errors)
	run.Set("generated_at", types.NowDateTime())
	if err := app.Save(run); err != nil {
		return "", err
	}
	return "", nil
}
