package services

import (
	"math"
	"strings"
	"testing"

	"costestimation/testhelpers"
)

func testCatalog() *Catalog {
	return NewCatalog([]CatalogItem{
		{ItemNumber: "C-1", Description: "Excavation", Unit: "m", Category: "earthwork"},
		{ItemNumber: "900(1)c2", Description: "Structural Concrete, Class A", Unit: "m3", Category: "concrete"},
		{ItemNumber: "902(1)a", Description: "Reinforcing Steel, Grade 40", Unit: "kg", Category: "steelworks"},
	})
}

func takeoffLine(id, source, itemNumber, unit string, qty float64) TakeoffLine {
	return TakeoffLine{
		ID:       id,
		SourceID: source,
		Quantity: qty,
		Unit:     unit,
		Tags:     []string{"dpwh:" + itemNumber},
	}
}

func TestGenerateBOQSingleLine(t *testing.T) {
	lines := []TakeoffLine{takeoffLine("l1", "s1", "C-1", "m", 12)}

	result := GenerateBOQ(lines, testCatalog())

	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("unexpected errors %v / warnings %v", result.Errors, result.Warnings)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("got %d BOQ lines, want 1", len(result.Lines))
	}

	boq := result.Lines[0]
	if boq.ItemNumber != "C-1" {
		t.Errorf("ItemNumber = %q, want C-1", boq.ItemNumber)
	}
	if boq.Description != "Excavation" {
		t.Errorf("Description = %q, want Excavation", boq.Description)
	}
	if boq.Unit != "m" {
		t.Errorf("Unit = %q, want m", boq.Unit)
	}
	if math.Abs(boq.Quantity-12) > 1e-9 {
		t.Errorf("Quantity = %v, want 12", boq.Quantity)
	}
	if boq.Part != "PART C" {
		t.Errorf("Part = %q, want PART C", boq.Part)
	}
	if boq.LineCount != 1 {
		t.Errorf("LineCount = %d, want 1", boq.LineCount)
	}
	if result.Summary.LineCount != 1 || result.Summary.SourceLines != 1 || result.Summary.Skipped != 0 {
		t.Errorf("summary = %+v", result.Summary)
	}
}

func TestGenerateBOQSumsSharedItems(t *testing.T) {
	lines := []TakeoffLine{
		takeoffLine("l1", "s1", "900(1)c2", "m3", 40.5),
		takeoffLine("l2", "s2", "902(1)a", "kg", 1200),
		takeoffLine("l3", "s3", "900(1)c2", "m3", 19.5),
	}

	result := GenerateBOQ(lines, testCatalog())

	if len(result.Lines) != 2 {
		t.Fatalf("got %d BOQ lines, want 2", len(result.Lines))
	}

	// First-seen order: concrete first, then rebar.
	concrete := result.Lines[0]
	if concrete.ItemNumber != "900(1)c2" {
		t.Fatalf("first line = %q, want 900(1)c2", concrete.ItemNumber)
	}
	if math.Abs(concrete.Quantity-60) > 1e-9 {
		t.Errorf("concrete quantity = %v, want 60", concrete.Quantity)
	}
	if concrete.LineCount != 2 {
		t.Errorf("concrete LineCount = %d, want 2", concrete.LineCount)
	}
	if result.Lines[1].ItemNumber != "902(1)a" {
		t.Errorf("second line = %q, want 902(1)a", result.Lines[1].ItemNumber)
	}
}

func TestGenerateBOQUnknownItemWarnsAndSkips(t *testing.T) {
	lines := []TakeoffLine{
		takeoffLine("l1", "s1", "C-1", "m", 12),
		takeoffLine("l2", "s2", "NOPE-99", "m", 5),
	}

	result := GenerateBOQ(lines, testCatalog())

	if len(result.Lines) != 1 {
		t.Fatalf("got %d BOQ lines, want 1", len(result.Lines))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(result.Warnings), result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "NOPE-99") {
		t.Errorf("warning %q does not name the unknown item", result.Warnings[0])
	}
	if result.Summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Summary.Skipped)
	}
}

func TestGenerateBOQMissingCatalogRefIsError(t *testing.T) {
	lines := []TakeoffLine{
		{ID: "l1", SourceID: "s1", Quantity: 3, Unit: "m2", Tags: []string{"category:masonry"}},
	}

	result := GenerateBOQ(lines, testCatalog())

	if len(result.Lines) != 0 {
		t.Fatalf("got %d BOQ lines, want 0", len(result.Lines))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	if result.Summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Summary.Skipped)
	}
}

func TestGenerateBOQUnitMismatchExcludesWholeGroup(t *testing.T) {
	lines := []TakeoffLine{
		takeoffLine("l1", "s1", "900(1)c2", "m3", 40),
		takeoffLine("l2", "s2", "900(1)c2", "m2", 10), // wrong unit
		takeoffLine("l3", "s3", "C-1", "m", 12),
	}

	result := GenerateBOQ(lines, testCatalog())

	if len(result.Lines) != 1 {
		t.Fatalf("got %d BOQ lines, want 1", len(result.Lines))
	}
	if result.Lines[0].ItemNumber != "C-1" {
		t.Errorf("surviving line = %q, want C-1", result.Lines[0].ItemNumber)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "unit mismatch") {
		t.Errorf("error %q does not mention the mismatch", result.Errors[0])
	}
	// The valid concrete line is dragged down with its group.
	if result.Summary.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Summary.Skipped)
	}
}

func TestGenerateBOQEmptyInput(t *testing.T) {
	result := GenerateBOQ(nil, testCatalog())

	if len(result.Lines) != 0 || len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Errorf("empty input must produce an empty successful result: %+v", result)
	}
	if result.Summary.SourceLines != 0 {
		t.Errorf("SourceLines = %d, want 0", result.Summary.SourceLines)
	}
}

func TestAttachBOQToCalcRun(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Attach Test Project")
	run := testhelpers.CreateTestCalcRun(t, app, project.Id, "run-abc")

	lines := []BOQLine{{ItemNumber: "C-1", Description: "Excavation", Unit: "m", Quantity: 12, LineCount: 1}}
	summary := BOQSummary{LineCount: 1, SourceLines: 1}

	warning, err := AttachBOQToCalcRun(app, project.Id, "run-abc", lines, summary)
	if err != nil {
		t.Fatalf("AttachBOQToCalcRun failed: %v", err)
	}
	if warning != "" {
		t.Fatalf("unexpected warning: %q", warning)
	}

	saved, err := app.FindRecordById("calc_runs", run.Id)
	if err != nil {
		t.Fatalf("failed to reload calc run: %v", err)
	}

	var savedLines []BOQLine
	if err := saved.UnmarshalJSONField("boq_lines", &savedLines); err != nil {
		t.Fatalf("failed to decode boq_lines: %v", err)
	}
	if len(savedLines) != 1 || savedLines[0].ItemNumber != "C-1" {
		t.Errorf("saved lines = %+v", savedLines)
	}
	if saved.GetDateTime("generated_at").IsZero() {
		t.Error("generated_at was not stamped")
	}
}

func TestAttachBOQToCalcRunMissingRunWarns(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Attach Miss Project")

	warning, err := AttachBOQToCalcRun(app, project.Id, "no-such-run", nil, BOQSummary{})
	if err != nil {
		t.Fatalf("missing run must not be an error: %v", err)
	}
	if !strings.Contains(warning, "no-such-run") {
		t.Errorf("warning %q does not name the run key", warning)
	}
}

func TestAttachBOQToCalcRunScopedToProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	p1 := testhelpers.CreateTestProject(t, app, "Project One")
	p2 := testhelpers.CreateTestProject(t, app, "Project Two")
	testhelpers.CreateTestCalcRun(t, app, p1.Id, "shared-key")

	// Same key under a different project must not match.
	warning, err := AttachBOQToCalcRun(app, p2.Id, "shared-key", nil, BOQSummary{})
	if err != nil {
		t.Fatalf("AttachBOQToCalcRun failed: %v", err)
	}
	if warning == "" {
		t.Error("expected a not-found warning for the wrong project")
	}
}

func TestAttachBOQToCalcRunQueryFailureIsError(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Broken Store Project")

	// Drop the collection so the lookup fails outright instead of coming
	// back empty.
	col, err := app.FindCollectionByNameOrId("calc_runs")
	if err != nil {
		t.Fatalf("find calc_runs collection: %v", err)
	}
	if err := app.Delete(col); err != nil {
		t.Fatalf("drop calc_runs collection: %v", err)
	}

	warning, err := AttachBOQToCalcRun(app, project.Id, "any", nil, BOQSummary{})
	if err == nil {
		t.Fatalf("expected an error when the lookup fails, got warning %q", warning)
	}
	if warning != "" {
		t.Errorf("failed lookup also produced warning %q", warning)
	}
}
