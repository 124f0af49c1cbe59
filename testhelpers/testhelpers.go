// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestScheduleItem creates a schedule item record linked to a project.
func CreateTestScheduleItem(t *testing.T, app *pocketbase.PocketBase, projectID, category, itemNumber, unit string, qty float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("schedule_items")
	if err != nil {
		t.Fatalf("failed to find schedule_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("category", category)
	record.Set("dpwh_item_number", itemNumber)
	record.Set("unit", unit)
	record.Set("quantity", qty)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test schedule item: %v", err)
	}

	return record
}

// CreateTestVersion creates a takeoff version record with the given number.
func CreateTestVersion(t *testing.T, app *pocketbase.PocketBase, projectID string, number int, label string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("takeoff_versions")
	if err != nil {
		t.Fatalf("failed to find takeoff_versions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("version_number", number)
	record.Set("label", label)
	record.Set("version_type", "preliminary")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test version: %v", err)
	}

	return record
}

// CreateTestEstimate creates an estimate record in the given status.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, projectID string, version int, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("version_number", version)
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateTestCalcRun creates a calc run record and returns it. The run key is
// random unless a non-empty key is supplied.
func CreateTestCalcRun(t *testing.T, app *pocketbase.PocketBase, projectID, runKey string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("calc_runs")
	if err != nil {
		t.Fatalf("failed to find calc_runs collection: %v", err)
	}

	if runKey == "" {
		runKey = uuid.NewString()
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("run_key", runKey)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test calc run: %v", err)
	}

	return record
}
