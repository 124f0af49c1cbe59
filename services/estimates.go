package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Estimate approval statuses. Approved and rejected are terminal; restarting
// the cycle means creating a new takeoff version, which is outside this
// state machine.
const (
	EstimateStatusDraft     = "draft"
	EstimateStatusSubmitted = "submitted"
	EstimateStatusApproved  = "approved"
	EstimateStatusRejected  = "rejected"
)

// EstimateNote is one entry in an estimate's append-only notes log.
type EstimateNote struct {
	NotedBy string    `json:"notedBy"`
	Reason  string    `json:"reason"`
	NotedAt time.Time `json:"notedAt"`
}

// CreateEstimate saves a fresh draft estimate for (project, version).
// Exactly one estimate may exist per pair; a second create fails.
func CreateEstimate(app *pocketbase.PocketBase, projectID string, version int, preparedBy string) (*core.Record, error) {
	if _, err := app.FindRecordById("projects", projectID); err != nil {
		return nil, &NotFoundError{Entity: "project", ID: projectID}
	}

	existing, err := findEstimate(app, projectID, version)
	if err == nil && existing != nil {
		return nil, &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("estimate for project %s version %d already exists", projectID, version),
		}
	}

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return nil, fmt.Errorf("create estimate: %w", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("version_number", version)
	record.Set("status", EstimateStatusDraft)
	record.Set("prepared_by", preparedBy)
	record.Set("notes", []EstimateNote{})
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("create estimate for project %s version %d: %w", projectID, version, err)
	}
	return record, nil
}

// SubmitEstimate moves a draft estimate to submitted and stamps the
// preparer. Any other starting status is an InvalidTransitionError and the
// record is left untouched.
func SubmitEstimate(app *pocketbase.PocketBase, projectID string, version int, preparedBy string, now time.Time) (*core.Record, error) {
	record, err := findEstimate(app, projectID, version)
	if err != nil {
		return nil, err
	}

	if status := record.GetString("status"); status != EstimateStatusDraft {
		return nil, &InvalidTransitionError{Action: "submit", Status: status}
	}

	record.Set("status", EstimateStatusSubmitted)
	record.Set("prepared_by", preparedBy)
	record.Set("prepared_date", now)
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("submit estimate for project %s version %d: %w", projectID, version, err)
	}
	return record, nil
}

// ApproveEstimate moves a submitted estimate to approved and stamps the
// approver. Approval is terminal.
func ApproveEstimate(app *pocketbase.PocketBase, projectID string, version int, approvedBy string, now time.Time) (*core.Record, error) {
	record, err := findEstimate(app, projectID, version)
	if err != nil {
		return nil, err
	}

	if status := record.GetString("status"); status != EstimateStatusSubmitted {
		return nil, &InvalidTransitionError{Action: "approve", Status: status}
	}

	record.Set("status", EstimateStatusApproved)
	record.Set("approved_by", approvedBy)
	record.Set("approved_date", now)
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("approve estimate for project %s version %d: %w", projectID, version, err)
	}
	return record, nil
}

// RejectEstimate moves a submitted estimate to rejected, stamps the
// reviewer and appends the rejection reason to the notes log. Earlier notes
// are never overwritten.
func RejectEstimate(app *pocketbase.PocketBase, projectID string, version int, reviewedBy, reason string, now time.Time) (*core.Record, error) {
	record, err := findEstimate(app, projectID, version)
	if err != nil {
		return nil, err
	}

	if status := record.GetString("status"); status != EstimateStatusSubmitted {
		return nil, &InvalidTransitionError{Action: "reject", Status: status}
	}

	var notes []EstimateNote
	if err := record.UnmarshalJSONField("notes", &notes); err != nil {
		notes = nil
	}
	notes = append(notes, EstimateNote{NotedBy: reviewedBy, Reason: reason, NotedAt: now})

	record.Set("status", EstimateStatusRejected)
	record.Set("reviewed_by", reviewedBy)
	record.Set("reviewed_date", now)
	record.Set("notes", notes)
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("reject estimate for project %s version %d: %w", projectID, version, err)
	}
	return record, nil
}

// EstimateNotes decodes the notes log of an estimate record.
func EstimateNotes(record *core.Record) []EstimateNote {
	var notes []EstimateNote
	if err := record.UnmarshalJSONField("notes", &notes); err != nil {
		return nil
	}
	return notes
}

// findEstimate resolves the single estimate addressed by (project, version).
func findEstimate(app *pocketbase.PocketBase, projectID string, version int) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"estimates",
		"project = {:project} && version_number = {:version}",
		"", 1, 0,
		map[string]any{"project": projectID, "version": version},
	)
	if err != nil {
		return nil, fmt.Errorf("find estimate for project %s version %d: %w", projectID, version, err)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{
			Entity: "estimate",
			ID:     fmt.Sprintf("project %s version %d", projectID, version),
		}
	}
	return records[0], nil
}
