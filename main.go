package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
	"costestimation/handlers"
	"costestimation/services"
)

func main() {
	app := pocketbase.New()
	catalog := services.DefaultCatalog()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Catalog & classification ─────────────────────────────
		se.Router.GET("/api/catalog", handlers.HandleCatalogList(catalog))
		se.Router.GET("/api/catalog/classify", handlers.HandleCatalogClassify(catalog))
		se.Router.GET("/api/trades", handlers.HandleTradeList())
		se.Router.GET("/api/trades/{category}", handlers.HandleTradeView())

		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/api/projects/{projectId}", handlers.HandleProjectView(app))

		// ── Schedule items ───────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/schedule-items", handlers.HandleScheduleItemList(app))
		se.Router.POST("/api/projects/{projectId}/schedule-items", handlers.HandleScheduleItemCreate(app, catalog))
		se.Router.PATCH("/api/projects/{projectId}/schedule-items/{itemId}", handlers.HandleScheduleItemUpdate(app, catalog))
		se.Router.DELETE("/api/projects/{projectId}/schedule-items/{itemId}", handlers.HandleScheduleItemDelete(app))

		// Schedule import (template must be before the generic import route)
		se.Router.GET("/api/projects/{projectId}/schedule-items/template", handlers.HandleScheduleTemplate(catalog))
		se.Router.POST("/api/projects/{projectId}/schedule-items/import", handlers.HandleScheduleImport(app, catalog))

		// ── Calculation pipeline ─────────────────────────────────
		se.Router.POST("/api/projects/{projectId}/takeoff/calculate", handlers.HandleTakeoffCalculate(app))
		se.Router.POST("/api/projects/{projectId}/boq/generate", handlers.HandleBOQGenerate(app, catalog))

		// ── Calc runs ────────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/calc-runs", handlers.HandleCalcRunList(app))
		se.Router.POST("/api/projects/{projectId}/calc-runs", handlers.HandleCalcRunCreate(app))
		se.Router.GET("/api/projects/{projectId}/calc-runs/{runKey}", handlers.HandleCalcRunView(app))

		// ── Takeoff versions ─────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/versions", handlers.HandleVersionList(app))
		se.Router.POST("/api/projects/{projectId}/versions", handlers.HandleVersionCreate(app))
		se.Router.POST("/api/versions/{versionId}/duplicate", handlers.HandleVersionDuplicate(app))

		// ── Estimate approval ────────────────────────────────────
		se.Router.POST("/api/projects/{projectId}/estimates/{version}", handlers.HandleEstimateCreate(app))
		se.Router.GET("/api/projects/{projectId}/estimates/{version}", handlers.HandleEstimateView(app))
		se.Router.POST("/api/projects/{projectId}/estimates/{version}/submit", handlers.HandleEstimateSubmit(app))
		se.Router.POST("/api/projects/{projectId}/estimates/{version}/approve", handlers.HandleEstimateApprove(app))
		se.Router.POST("/api/projects/{projectId}/estimates/{version}/reject", handlers.HandleEstimateReject(app))

		// ── BOQ export ───────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/boq/export/excel", handlers.HandleBOQExportExcel(app, catalog))
		se.Router.GET("/api/projects/{projectId}/boq/export/pdf", handlers.HandleBOQExportPDF(app, catalog))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
