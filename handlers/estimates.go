package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// estimateResponse is the JSON shape of an estimate record.
type estimateResponse struct {
	ID            string                  `json:"id"`
	VersionNumber int                     `json:"versionNumber"`
	Status        string                  `json:"status"`
	PreparedBy    string                  `json:"preparedBy,omitempty"`
	PreparedDate  string                  `json:"preparedDate,omitempty"`
	ApprovedBy    string                  `json:"approvedBy,omitempty"`
	ApprovedDate  string                  `json:"approvedDate,omitempty"`
	ReviewedBy    string                  `json:"reviewedBy,omitempty"`
	ReviewedDate  string                  `json:"reviewedDate,omitempty"`
	Notes         []services.EstimateNote `json:"notes"`
}

func estimateFromRecord(r *core.Record) estimateResponse {
	resp := estimateResponse{
		ID:            r.Id,
		VersionNumber: r.GetInt("version_number"),
		Status:        r.GetString("status"),
		PreparedBy:    r.GetString("prepared_by"),
		ApprovedBy:    r.GetString("approved_by"),
		ReviewedBy:    r.GetString("reviewed_by"),
		Notes:         []services.EstimateNote{},
	}
	if notes := services.EstimateNotes(r); notes != nil {
		resp.Notes = notes
	}
	if dt := r.GetDateTime("prepared_date"); !dt.IsZero() {
		resp.PreparedDate = dt.Time().Format(time.RFC3339)
	}
	if dt := r.GetDateTime("approved_date"); !dt.IsZero() {
		resp.ApprovedDate = dt.Time().Format(time.RFC3339)
	}
	if dt := r.GetDateTime("reviewed_date"); !dt.IsZero() {
		resp.ReviewedDate = dt.Time().Format(time.RFC3339)
	}
	return resp
}

// pathVersion parses the {version} path value.
func pathVersion(e *core.RequestEvent) (int, error) {
	raw := e.Request.PathValue("version")
	version, err := strconv.Atoi(raw)
	if err != nil || version < 1 {
		return 0, &services.ValidationError{Field: "version", Message: "version must be a positive integer"}
	}
	return version, nil
}

// HandleEstimateCreate returns a handler that opens a draft estimate for a
// (project, version) pair.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}
		version, err := pathVersion(e)
		if err != nil {
			return respondError(e, err)
		}

		var in struct {
			PreparedBy string `json:"preparedBy"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}

		record, err := services.CreateEstimate(app, project.Id, version, in.PreparedBy)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusCreated, estimateFromRecord(record))
	}
}

// HandleEstimateView returns a handler that fetches one estimate.
func HandleEstimateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}
		version, err := pathVersion(e)
		if err != nil {
			return respondError(e, err)
		}

		records, err := app.FindRecordsByFilter(
			"estimates",
			"project = {:project} && version_number = {:version}",
			"", 1, 0,
			map[string]any{"project": project.Id, "version": version},
		)
		if err != nil || len(records) == 0 {
			return respondError(e, &services.NotFoundError{
				Entity: "estimate",
				ID:     "project " + project.Id + " version " + strconv.Itoa(version),
			})
		}
		return e.JSON(http.StatusOK, estimateFromRecord(records[0]))
	}
}

// HandleEstimateSubmit returns a handler that moves a draft estimate to
// submitted.
func HandleEstimateSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}
		version, err := pathVersion(e)
		if err != nil {
			return respondError(e, err)
		}

		var in struct {
			PreparedBy string `json:"preparedBy"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}

		record, err := services.SubmitEstimate(app, project.Id, version, in.PreparedBy, time.Now())
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, estimateFromRecord(record))
	}
}

// HandleEstimateApprove returns a handler that approves a submitted estimate.
func HandleEstimateApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}
		version, err := pathVersion(e)
		if err != nil {
			return respondError(e, err)
		}

		var in struct {
			ApprovedBy string `json:"approvedBy"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}

		record, err := services.ApproveEstimate(app, project.Id, version, in.ApprovedBy, time.Now())
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, estimateFromRecord(record))
	}
}

// HandleEstimateReject returns a handler that rejects a submitted estimate
// with a mandatory reason.
func HandleEstimateReject(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}
		version, err := pathVersion(e)
		if err != nil {
			return respondError(e, err)
		}

		var in struct {
			ReviewedBy string `json:"reviewedBy"`
			Reason     string `json:"reason"`
		}
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}
		if strings.TrimSpace(in.Reason) == "" {
			return respondError(e, &services.ValidationError{Field: "reason", Message: "rejection reason is required"})
		}

		record, err := services.RejectEstimate(app, project.Id, version, in.ReviewedBy, in.Reason, time.Now())
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, estimateFromRecord(record))
	}
}
