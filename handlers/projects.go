package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// projectResponse is the JSON shape of a project record.
type projectResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ClientName      string `json:"clientName,omitempty"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
	Location        string `json:"location,omitempty"`
	Status          string `json:"status"`
}

func projectFromRecord(r *core.Record) projectResponse {
	return projectResponse{
		ID:              r.Id,
		Name:            r.GetString("name"),
		ClientName:      r.GetString("client_name"),
		ReferenceNumber: r.GetString("reference_number"),
		Location:        r.GetString("location"),
		Status:          r.GetString("status"),
	}
}

// HandleProjectList returns a handler that lists all projects.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find collection: %v", err)
			return respondError(e, err)
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("projects: could not list projects: %v", err)
			return respondError(e, err)
		}

		projects := make([]projectResponse, 0, len(records))
		for _, r := range records {
			projects = append(projects, projectFromRecord(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"projects": projects, "total": len(projects)})
	}
}

// HandleProjectCreate returns a handler that creates a project.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in struct {
			Name            string `json:"name"`
			ClientName      string `json:"clientName"`
			ReferenceNumber string `json:"referenceNumber"`
			Location        string `json:"location"`
			Status          string `json:"status"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}
		if strings.TrimSpace(in.Name) == "" {
			return respondError(e, &services.ValidationError{Field: "name", Message: "project name is required"})
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find collection: %v", err)
			return respondError(e, err)
		}

		status := in.Status
		if status == "" {
			status = "planning"
		}

		record := core.NewRecord(col)
		record.Set("name", strings.TrimSpace(in.Name))
		record.Set("client_name", in.ClientName)
		record.Set("reference_number", in.ReferenceNumber)
		record.Set("location", in.Location)
		record.Set("status", status)
		if err := app.Save(record); err != nil {
			log.Printf("projects: could not save project: %v", err)
			return respondError(e, &services.ValidationError{Field: "status", Message: "could not save project"})
		}

		return e.JSON(http.StatusCreated, projectFromRecord(record))
	}
}

// HandleProjectView returns a handler that fetches one project.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, projectFromRecord(project))
	}
}
