package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Takeoff version lifecycle statuses. Versions are only editable in draft
// or rejected and are superseded rather than deleted.
const (
	VersionStatusDraft      = "draft"
	VersionStatusSubmitted  = "submitted"
	VersionStatusApproved   = "approved"
	VersionStatusRejected   = "rejected"
	VersionStatusSuperseded = "superseded"
)

// VersionTypes lists the supported takeoff version types.
var VersionTypes = []string{"preliminary", "detailed", "revised", "final", "as_built"}

// DesignDataFields are the snapshot fields embedded in a takeoff version.
// Duplication copies every one of them verbatim.
var DesignDataFields = []string{
	"grid_data",
	"level_data",
	"template_data",
	"instance_data",
	"finish_data",
	"opening_data",
	"wall_data",
	"roof_data",
	"truss_data",
	"schedule_item_data",
	"boq_data",
	"rollup_totals",
}

// VersionParams configures a newly created takeoff version.
type VersionParams struct {
	Label       string
	VersionType string
	CreatedBy   string
	// DesignData holds the snapshot, keyed by DesignDataFields names.
	DesignData map[string]any
}

// VersionOverrides optionally replaces fields on a duplicated version.
// Unset fields fall back to values derived from the source record.
type VersionOverrides struct {
	Label       string
	VersionType string
	CreatedBy   string
}

// CreateVersion allocates the next version number for the project and saves
// a new draft takeoff version with the given snapshot.
func CreateVersion(app *pocketbase.PocketBase, projectID string, p VersionParams) (*core.Record, error) {
	if _, err := app.FindRecordById("projects", projectID); err != nil {
		return nil, &NotFoundError{Entity: "project", ID: projectID}
	}

	col, err := app.FindCollectionByNameOrId("takeoff_versions")
	if err != nil {
		return nil, fmt.Errorf("create version: %w", err)
	}

	unlock := lockProject(projectID)
	defer unlock()

	next, err := nextVersionNumber(app, projectID)
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("version_number", next)
	record.Set("label", p.Label)
	versionType := p.VersionType
	if versionType == "" {
		versionType = "preliminary"
	}
	record.Set("version_type", versionType)
	record.Set("status", VersionStatusDraft)
	record.Set("created_by", p.CreatedBy)
	record.Set("change_summary", zeroChangeSummary())
	for _, field := range DesignDataFields {
		if data, ok := p.DesignData[field]; ok {
			record.Set(field, data)
		}
	}

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("create version for project %s: %w", projectID, err)
	}
	return record, nil
}

// DuplicateVersion copies the entire design-data snapshot of the source
// version into a fresh draft. The new version gets the project's next
// version number, references the source as its parent, and starts with a
// zeroed change summary since no edits have occurred yet.
func DuplicateVersion(app *pocketbase.PocketBase, sourceVersionID string, o VersionOverrides) (*core.Record, error) {
	source, err := app.FindRecordById("takeoff_versions", sourceVersionID)
	if err != nil {
		return nil, &NotFoundError{Entity: "takeoff version", ID: sourceVersionID}
	}

	col, err := app.FindCollectionByNameOrId("takeoff_versions")
	if err != nil {
		return nil, fmt.Errorf("duplicate version: %w", err)
	}

	projectID := source.GetString("project")

	unlock := lockProject(projectID)
	defer unlock()

	next, err := nextVersionNumber(app, projectID)
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("version_number", next)
	record.Set("status", VersionStatusDraft)
	record.Set("parent_version", source.Id)
	record.Set("change_summary", zeroChangeSummary())

	label := o.Label
	if label == "" {
		label = source.GetString("label") + " (Copy)"
	}
	record.Set("label", label)

	versionType := o.VersionType
	if versionType == "" {
		versionType = source.GetString("version_type")
	}
	record.Set("version_type", versionType)

	createdBy := o.CreatedBy
	if createdBy == "" {
		createdBy = source.GetString("created_by")
	}
	record.Set("created_by", createdBy)

	for _, field := range DesignDataFields {
		record.Set(field, source.Get(field))
	}

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("duplicate version %s: %w", sourceVersionID, err)
	}
	return record, nil
}

// nextVersionNumber returns the project's next monotonic version number.
// Callers must hold the project lock.
func nextVersionNumber(app *pocketbase.PocketBase, projectID string) (int, error) {
	latest, err := app.FindRecordsByFilter(
		"takeoff_versions",
		"project = {:project}",
		"-version_number", 1, 0,
		map[string]any{"project": projectID},
	)
	if err != nil {
		return 0, fmt.Errorf("allocate version number for project %s: %w", projectID, err)
	}
	if len(latest) == 0 {
		return 1, nil
	}
	return latest[0].GetInt("version_number") + 1, nil
}

func zeroChangeSummary() map[string]int {
	return map[string]int{"added": 0, "removed": 0, "modified": 0}
}
