package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"costestimation/services"
	"costestimation/testhelpers"
)

func TestHandleScheduleItemCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()
	project := testhelpers.CreateTestProject(t, app, "Item Create Project")

	body := `{"category":"concrete","dpwhItemNumber":"900(1)c2","description":"Structural Concrete","unit":"m3","quantity":40.5,"basis":"Footing schedule","tags":["phase1"]}`
	req := postJSON("/api/projects/"+project.Id+"/schedule-items", body)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleScheduleItemCreate(app, catalog)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp services.ScheduleItem
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.ID == "" {
		t.Error("response has no record id")
	}
	if resp.Quantity != 40.5 {
		t.Errorf("quantity = %v, want 40.5", resp.Quantity)
	}
	if len(resp.Tags) != 1 || resp.Tags[0] != "phase1" {
		t.Errorf("tags = %v, want [phase1]", resp.Tags)
	}
}

func TestHandleScheduleItemCreateValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()
	project := testhelpers.CreateTestProject(t, app, "Item Validation Project")

	tests := []struct {
		name string
		body string
	}{
		{"unknown category", `{"category":"landscaping","dpwhItemNumber":"900(1)c2","unit":"m3","quantity":1}`},
		{"missing item number", `{"category":"concrete","dpwhItemNumber":"  ","unit":"m3","quantity":1}`},
		{"missing unit", `{"category":"concrete","dpwhItemNumber":"900(1)c2","quantity":1}`},
		{"negative quantity", `{"category":"concrete","dpwhItemNumber":"900(1)c2","unit":"m3","quantity":-1}`},
		{"unit mismatch with catalog", `{"category":"concrete","dpwhItemNumber":"900(1)c2","unit":"kg","quantity":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postJSON("/api/projects/"+project.Id+"/schedule-items", tt.body)
			req.SetPathValue("projectId", project.Id)
			rec := httptest.NewRecorder()

			if err := HandleScheduleItemCreate(app, catalog)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleScheduleItemCreateZeroQuantity(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()
	project := testhelpers.CreateTestProject(t, app, "Zero Quantity Project")

	body := `{"category":"plumbing","dpwhItemNumber":"1002(4)","unit":"set","quantity":0}`
	req := postJSON("/api/projects/"+project.Id+"/schedule-items", body)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()

	if err := HandleScheduleItemCreate(app, catalog)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleScheduleItemUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()
	project := testhelpers.CreateTestProject(t, app, "Item Update Project")
	item := testhelpers.CreateTestScheduleItem(t, app, project.Id, "concrete", "900(1)c2", "m3", 40.5)

	body := `{"category":"concrete","dpwhItemNumber":"900(1)c2","unit":"m3","quantity":55}`
	req := httptest.NewRequest(http.MethodPatch, "/api/projects/"+project.Id+"/schedule-items/"+item.Id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := HandleScheduleItemUpdate(app, catalog)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("schedule_items", item.Id)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if got := saved.GetFloat("quantity"); got != 55 {
		t.Errorf("stored quantity = %v, want 55", got)
	}
}

func TestHandleScheduleItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Item Delete Project")
	item := testhelpers.CreateTestScheduleItem(t, app, project.Id, "concrete", "900(1)c2", "m3", 40.5)

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+project.Id+"/schedule-items/"+item.Id, nil)
	req.SetPathValue("projectId", project.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := HandleScheduleItemDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body: %s", rec.Code, rec.Body.String())
	}

	if _, err := app.FindRecordById("schedule_items", item.Id); err == nil {
		t.Error("item still exists after delete")
	}
}

func TestHandleScheduleItemListUnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/nope/schedule-items", nil)
	req.SetPathValue("projectId", "nope")
	rec := httptest.NewRecorder()

	if err := HandleScheduleItemList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
	}
}
