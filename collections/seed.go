package collections

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type scheduleItemDef struct {
	sortOrder      int
	category       string
	dpwhItemNumber string
	description    string
	unit           string
	quantity       float64
	basis          string
	tags           []string
}

// Seed populates the collections with a realistic DPWH school building
// project. It is safe to call on every startup because it returns early if
// any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	scheduleItemsCol, err := app.FindCollectionByNameOrId("schedule_items")
	if err != nil {
		return fmt.Errorf("seed: could not find schedule_items collection: %w", err)
	}
	versionsCol, err := app.FindCollectionByNameOrId("takeoff_versions")
	if err != nil {
		return fmt.Errorf("seed: could not find takeoff_versions collection: %w", err)
	}
	estimatesCol, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("seed: could not find estimates collection: %w", err)
	}
	calcRunsCol, err := app.FindCollectionByNameOrId("calc_runs")
	if err != nil {
		return fmt.Errorf("seed: could not find calc_runs collection: %w", err)
	}

	// ── helper: create schedule item ─────────────────────────────────
	createScheduleItem := func(projectID string, d scheduleItemDef) error {
		r := core.NewRecord(scheduleItemsCol)
		r.Set("project", projectID)
		r.Set("sort_order", d.sortOrder)
		r.Set("category", d.category)
		r.Set("dpwh_item_number", d.dpwhItemNumber)
		r.Set("description", d.description)
		r.Set("unit", d.unit)
		r.Set("quantity", d.quantity)
		if d.basis != "" {
			r.Set("basis", d.basis)
		}
		if len(d.tags) > 0 {
			r.Set("tags", d.tags)
		}
		return app.Save(r)
	}

	// ══════════════════════════════════════════════════════════════════
	// PROJECT: Two-Storey Six-Classroom School Building
	// ══════════════════════════════════════════════════════════════════

	p1 := core.NewRecord(projectsCol)
	p1.Set("name", "Two-Storey Six-Classroom School Building — Brgy. San Isidro")
	p1.Set("client_name", "Department of Education, Division of Laguna")
	p1.Set("reference_number", "DPWH-IVA/SB/2026-014")
	p1.Set("location", "Brgy. San Isidro, Calamba City, Laguna")
	p1.Set("status", "active")
	if err := app.Save(p1); err != nil {
		return fmt.Errorf("seed: save project 1: %w", err)
	}

	// ── Schedule of work items ───────────────────────────────────────
	items := []scheduleItemDef{
		{sortOrder: 1, category: "general", dpwhItemNumber: "A.1.1(8)", description: "Provision of Field Office for the Engineer", unit: "month", quantity: 8, basis: "contract duration", tags: []string{"general_requirements"}},
		{sortOrder: 2, category: "earthwork", dpwhItemNumber: "800(2)", description: "Clearing and Grubbing", unit: "m2", quantity: 650, basis: "site development plan SD-1", tags: []string{"substructure"}},
		{sortOrder: 3, category: "earthwork", dpwhItemNumber: "803(1)a", description: "Structure Excavation (Common Soil)", unit: "m3", quantity: 185.4, basis: "foundation plan S-1, footing schedule", tags: []string{"substructure"}},
		{sortOrder: 4, category: "earthwork", dpwhItemNumber: "804(1)a", description: "Embankment from Structure Excavation", unit: "m3", quantity: 96, basis: "finished floor line vs natural grade", tags: []string{"substructure"}},
		{sortOrder: 5, category: "concrete", dpwhItemNumber: "900(1)c2", description: "Structural Concrete, Class A, 28 days", unit: "m3", quantity: 142.75, basis: "framing plans S-2 to S-5", tags: []string{"structure"}},
		{sortOrder: 6, category: "steelworks", dpwhItemNumber: "902(1)a", description: "Reinforcing Steel, Grade 40", unit: "kg", quantity: 16890, basis: "bar bending schedule", tags: []string{"structure"}},
		{sortOrder: 7, category: "carpentry", dpwhItemNumber: "903(2)", description: "Formworks and Falseworks", unit: "m2", quantity: 1120, basis: "contact area of framing members", tags: []string{"structure"}},
		{sortOrder: 8, category: "masonry", dpwhItemNumber: "1046(2)a1", description: "CHB Non-Load Bearing (100mm)", unit: "m2", quantity: 486, basis: "wall layout, floor plans A-2/A-3", tags: []string{"architectural"}},
		{sortOrder: 9, category: "plumbing", dpwhItemNumber: "1002(4)", description: "Plumbing Fixtures and Fittings", unit: "set", quantity: 12, basis: "plumbing layout P-1", tags: []string{"services"}},
		{sortOrder: 10, category: "electrical", dpwhItemNumber: "1101(33)", description: "Wires and Wiring Devices", unit: "l.s.", quantity: 1, basis: "electrical plans E-1 to E-3", tags: []string{"services"}},
		{sortOrder: 11, category: "painting", dpwhItemNumber: "1032(1)a", description: "Painting Works (Masonry/Concrete)", unit: "m2", quantity: 972, basis: "both faces of interior walls", tags: []string{"finishes"}},
		{sortOrder: 12, category: "tiling", dpwhItemNumber: "1018(1)", description: "Glazed Tiles and Trims", unit: "m2", quantity: 64, basis: "toilet and lavatory areas", tags: []string{"finishes"}},
	}
	for _, d := range items {
		if err := createScheduleItem(p1.Id, d); err != nil {
			return fmt.Errorf("seed: save schedule item %q: %w", d.dpwhItemNumber, err)
		}
	}

	// ── Initial takeoff version ──────────────────────────────────────
	snapshot := make([]map[string]any, 0, len(items))
	for _, d := range items {
		snapshot = append(snapshot, map[string]any{
			"category":       d.category,
			"dpwhItemNumber": d.dpwhItemNumber,
			"description":    d.description,
			"unit":           d.unit,
			"quantity":       d.quantity,
			"basis":          d.basis,
			"tags":           d.tags,
		})
	}

	v1 := core.NewRecord(versionsCol)
	v1.Set("project", p1.Id)
	v1.Set("version_number", 1)
	v1.Set("label", "Preliminary Takeoff")
	v1.Set("version_type", "preliminary")
	v1.Set("status", "draft")
	v1.Set("created_by", "engr.reyes")
	v1.Set("change_summary", map[string]int{"added": 0, "removed": 0, "modified": 0})
	v1.Set("schedule_item_data", snapshot)
	if err := app.Save(v1); err != nil {
		return fmt.Errorf("seed: save takeoff version 1: %w", err)
	}

	// ── Draft estimate for version 1 ─────────────────────────────────
	e1 := core.NewRecord(estimatesCol)
	e1.Set("project", p1.Id)
	e1.Set("version_number", 1)
	e1.Set("status", "draft")
	e1.Set("prepared_by", "engr.reyes")
	e1.Set("notes", []map[string]string{})
	if err := app.Save(e1); err != nil {
		return fmt.Errorf("seed: save estimate 1: %w", err)
	}

	// ── Empty calc run awaiting the first calculation ────────────────
	r1 := core.NewRecord(calcRunsCol)
	r1.Set("project", p1.Id)
	r1.Set("run_key", uuid.NewString())
	r1.Set("created_by", "engr.reyes")
	if err := app.Save(r1); err != nil {
		return fmt.Errorf("seed: save calc run 1: %w", err)
	}

	log.Println("seed: all seed data inserted successfully (1 project, 12 schedule items, 1 version, 1 estimate, 1 calc run)")
	return nil
}
