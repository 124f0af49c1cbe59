package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"costestimation/services"
	"costestimation/testhelpers"
)

func TestHandleCalcRunCreateAssignsKey(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Run Create Project")

	req := postJSON("/api/projects/"+project.Id+"/calc-runs", `{"createdBy":"engr.reyes"}`)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleCalcRunCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp calcRunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.RunKey == "" {
		t.Error("run key was not assigned")
	}
	if resp.CreatedBy != "engr.reyes" {
		t.Errorf("createdBy = %q", resp.CreatedBy)
	}
}

func TestHandleCalcRunView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Run View Project")
	testhelpers.CreateTestCalcRun(t, app, project.Id, "run-42")

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.Id+"/calc-runs/run-42", nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("runKey", "run-42")
	rec := httptest.NewRecorder()

	if err := HandleCalcRunView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp calcRunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.RunKey != "run-42" {
		t.Errorf("runKey = %q, want run-42", resp.RunKey)
	}
}

func TestHandleCalcRunViewMissing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Run Miss Project")

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.Id+"/calc-runs/ghost", nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("runKey", "ghost")
	rec := httptest.NewRecorder()

	if err := HandleCalcRunView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleTakeoffCalculateStoresRun(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Takeoff Store Project")
	run := testhelpers.CreateTestCalcRun(t, app, project.Id, "run-55")
	testhelpers.CreateTestScheduleItem(t, app, project.Id, "plumbing", "1002(4)", "set", 12)

	req := postJSON("/api/projects/"+project.Id+"/takeoff/calculate?run=run-55", `{}`)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleTakeoffCalculate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("calc_runs", run.Id)
	if err != nil {
		t.Fatalf("reload calc run: %v", err)
	}
	var lines []services.TakeoffLine
	if err := saved.UnmarshalJSONField("takeoff_lines", &lines); err != nil {
		t.Fatalf("decode takeoff_lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("stored %d lines, want 1", len(lines))
	}
	if lines[0].Trade != services.TradePlumbing {
		t.Errorf("stored trade = %q, want Plumbing", lines[0].Trade)
	}

	// The stored run reports its generation stamp in RFC 3339.
	req = httptest.NewRequest(http.MethodGet, "/api/projects/"+project.Id+"/calc-runs/run-55", nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("runKey", "run-55")
	rec = httptest.NewRecorder()

	if err := HandleCalcRunView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("view handler returned error: %v", err)
	}
	var resp calcRunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, resp.GeneratedAt); err != nil {
		t.Errorf("generatedAt %q is not RFC 3339: %v", resp.GeneratedAt, err)
	}
}
