package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// calcRunResponse is the JSON shape of a stored calc run.
type calcRunResponse struct {
	ID          string                 `json:"id"`
	RunKey      string                 `json:"runKey"`
	CreatedBy   string                 `json:"createdBy,omitempty"`
	Lines       []services.TakeoffLine `json:"takeoffLines"`
	Errors      []string               `json:"errors"`
	BOQLines    []services.BOQLine     `json:"boqLines"`
	Summary     *services.BOQSummary   `json:"summary,omitempty"`
	GeneratedAt string                 `json:"generatedAt,omitempty"`
}

func calcRunFromRecord(r *core.Record) calcRunResponse {
	resp := calcRunResponse{
		ID:        r.Id,
		RunKey:    r.GetString("run_key"),
		CreatedBy: r.GetString("created_by"),
		Lines:     []services.TakeoffLine{},
		Errors:    []string{},
		BOQLines:  []services.BOQLine{},
	}

	r.UnmarshalJSONField("takeoff_lines", &resp.Lines)
	r.UnmarshalJSONField("calc_errors", &resp.Errors)
	r.UnmarshalJSONField("boq_lines", &resp.BOQLines)

	var summary services.BOQSummary
	if err := r.UnmarshalJSONField("summary", &summary); err == nil {
		resp.Summary = &summary
	}
	if dt := r.GetDateTime("generated_at"); !dt.IsZero() {
		resp.GeneratedAt = dt.Time().Format(time.RFC3339)
	}
	return resp
}

// HandleCalcRunCreate returns a handler that opens a fresh calc run with a
// server-assigned run key.
func HandleCalcRunCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		var in struct {
			CreatedBy string `json:"createdBy"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}

		col, err := app.FindCollectionByNameOrId("calc_runs")
		if err != nil {
			log.Printf("calc_runs: could not find collection: %v", err)
			return respondError(e, err)
		}

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		record.Set("run_key", uuid.NewString())
		record.Set("created_by", in.CreatedBy)
		if err := app.Save(record); err != nil {
			log.Printf("calc_runs: could not save run: %v", err)
			return respondError(e, err)
		}

		return e.JSON(http.StatusCreated, calcRunFromRecord(record))
	}
}

// HandleCalcRunList returns a handler that lists a project's calc runs,
// newest first.
func HandleCalcRunList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		records, err := app.FindRecordsByFilter(
			"calc_runs",
			"project = {:project}",
			"-created", 0, 0,
			map[string]any{"project": project.Id},
		)
		if err != nil {
			log.Printf("calc_runs: could not list runs: %v", err)
			return respondError(e, err)
		}

		runs := make([]calcRunResponse, 0, len(records))
		for _, r := range records {
			runs = append(runs, calcRunFromRecord(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"runs": runs, "total": len(runs)})
	}
}

// HandleCalcRunView returns a handler that fetches one calc run by run key.
func HandleCalcRunView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		runKey := e.Request.PathValue("runKey")
		records, err := app.FindRecordsByFilter(
			"calc_runs",
			"project = {:project} && run_key = {:key}",
			"", 1, 0,
			map[string]any{"project": project.Id, "key": runKey},
		)
		if err != nil || len(records) == 0 {
			return respondError(e, &services.NotFoundError{Entity: "calc run", ID: runKey})
		}

		return e.JSON(http.StatusOK, calcRunFromRecord(records[0]))
	}
}
