package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"costestimation/services"
	"costestimation/testhelpers"
)

func TestHandleCatalogListFiltersByCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()

	req := httptest.NewRequest(http.MethodGet, "/api/catalog?category=concrete", nil)
	rec := httptest.NewRecorder()

	if err := HandleCatalogList(catalog)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items []catalogItemResponse `json:"items"`
		Total int                   `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Total == 0 {
		t.Fatal("no concrete items returned")
	}
	for _, item := range resp.Items {
		if item.Category != "concrete" {
			t.Errorf("item %s has category %q, want concrete", item.ItemNumber, item.Category)
		}
		if item.Trade != services.TradeConcrete {
			t.Errorf("item %s has trade %q, want Concrete", item.ItemNumber, item.Trade)
		}
	}
}

func TestHandleCatalogClassify(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()

	// The catalog supplies the category when the query omits it.
	req := httptest.NewRequest(http.MethodGet, "/api/catalog/classify?item=900(1)c2", nil)
	rec := httptest.NewRecorder()

	if err := HandleCatalogClassify(catalog)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ItemNumber     string         `json:"itemNumber"`
		Category       string         `json:"category"`
		Classification *services.Part `json:"classification"`
		Trade          services.Trade `json:"trade"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Category != "concrete" {
		t.Errorf("category = %q, want concrete", resp.Category)
	}
	if resp.Classification == nil || resp.Classification.Code != "PART D" {
		t.Errorf("classification = %+v, want PART D", resp.Classification)
	}
	if resp.Trade != services.TradeConcrete {
		t.Errorf("trade = %q, want Concrete", resp.Trade)
	}
}

func TestHandleCatalogClassifyRequiresItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	catalog := services.DefaultCatalog()

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/classify", nil)
	rec := httptest.NewRecorder()

	if err := HandleCatalogClassify(catalog)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleTradeView(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/trades/steelworks", nil)
	req.SetPathValue("category", "steelworks")
	rec := httptest.NewRecorder()

	if err := HandleTradeView()(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Category string         `json:"category"`
		Trade    services.Trade `json:"trade"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Trade != services.TradeMetals {
		t.Errorf("trade = %q, want Metals", resp.Trade)
	}

	// Unknown categories are a client error, not TradeOther.
	req = httptest.NewRequest(http.MethodGet, "/api/trades/landscaping", nil)
	req.SetPathValue("category", "landscaping")
	rec = httptest.NewRecorder()

	if err := HandleTradeView()(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleTradeList(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
	rec := httptest.NewRecorder()

	if err := HandleTradeList()(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Categories []string                  `json:"categories"`
		Trades     map[string]services.Trade `json:"trades"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Categories) != len(services.Categories) {
		t.Errorf("got %d categories, want %d", len(resp.Categories), len(services.Categories))
	}
	if resp.Trades["plumbing"] != services.TradePlumbing {
		t.Errorf("plumbing trade = %q", resp.Trades["plumbing"])
	}
}
