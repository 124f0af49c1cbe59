package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// versionResponse is the JSON shape of a takeoff version, without the bulky
// design-data snapshot. List and mutation endpoints return this; the full
// snapshot stays server-side.
type versionResponse struct {
	ID            string         `json:"id"`
	VersionNumber int            `json:"versionNumber"`
	Label         string         `json:"label"`
	VersionType   string         `json:"versionType"`
	Status        string         `json:"status"`
	CreatedBy     string         `json:"createdBy,omitempty"`
	ParentVersion string         `json:"parentVersion,omitempty"`
	ChangeSummary map[string]int `json:"changeSummary"`
}

func versionFromRecord(r *core.Record) versionResponse {
	resp := versionResponse{
		ID:            r.Id,
		VersionNumber: r.GetInt("version_number"),
		Label:         r.GetString("label"),
		VersionType:   r.GetString("version_type"),
		Status:        r.GetString("status"),
		CreatedBy:     r.GetString("created_by"),
		ParentVersion: r.GetString("parent_version"),
		ChangeSummary: map[string]int{},
	}
	r.UnmarshalJSONField("change_summary", &resp.ChangeSummary)
	return resp
}

// HandleVersionList returns a handler that lists a project's takeoff
// versions in version order.
func HandleVersionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		records, err := app.FindRecordsByFilter(
			"takeoff_versions",
			"project = {:project}",
			"version_number", 0, 0,
			map[string]any{"project": project.Id},
		)
		if err != nil {
			log.Printf("versions: could not list versions: %v", err)
			return respondError(e, err)
		}

		versions := make([]versionResponse, 0, len(records))
		for _, r := range records {
			versions = append(versions, versionFromRecord(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"versions": versions, "total": len(versions)})
	}
}

// HandleVersionCreate returns a handler that snapshots the project's current
// schedule items into a new draft takeoff version.
func HandleVersionCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		var in struct {
			Label       string `json:"label"`
			VersionType string `json:"versionType"`
			CreatedBy   string `json:"createdBy"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}

		items, err := loadScheduleItems(app, project.Id)
		if err != nil {
			log.Printf("versions: could not load schedule items: %v", err)
			return respondError(e, err)
		}

		record, err := services.CreateVersion(app, project.Id, services.VersionParams{
			Label:       in.Label,
			VersionType: in.VersionType,
			CreatedBy:   in.CreatedBy,
			DesignData:  map[string]any{"schedule_item_data": items},
		})
		if err != nil {
			log.Printf("versions: could not create version: %v", err)
			return respondError(e, err)
		}

		return e.JSON(http.StatusCreated, versionFromRecord(record))
	}
}

// HandleVersionDuplicate returns a handler that copies an existing version
// into a fresh draft with the project's next version number.
func HandleVersionDuplicate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		versionID := e.Request.PathValue("versionId")

		var in struct {
			Label       string `json:"label"`
			VersionType string `json:"versionType"`
			CreatedBy   string `json:"createdBy"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}

		record, err := services.DuplicateVersion(app, versionID, services.VersionOverrides{
			Label:       in.Label,
			VersionType: in.VersionType,
			CreatedBy:   in.CreatedBy,
		})
		if err != nil {
			if !services.IsNotFound(err) {
				log.Printf("versions: could not duplicate version %s: %v", versionID, err)
			}
			return respondError(e, err)
		}

		return e.JSON(http.StatusCreated, versionFromRecord(record))
	}
}
