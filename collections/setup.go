package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var categoryValues = []string{
	"earthwork", "concrete", "masonry", "carpentry", "roofing", "plumbing",
	"electrical", "painting", "tiling", "steelworks", "doors_windows", "general",
}

var versionTypeValues = []string{"preliminary", "detailed", "revised", "final", "as_built"}

var versionStatusValues = []string{"draft", "submitted", "approved", "rejected", "superseded"}

var estimateStatusValues = []string{"draft", "submitted", "approved", "rejected"}

// Setup programmatically creates/ensures the projects, schedule_items,
// takeoff_versions, estimates and calc_runs collections exist.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"planning", "active", "completed", "archived"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "schedule_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    categoryValues,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "dpwh_item_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		// Zero is a legitimate quantity, so the field cannot be required.
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.TextField{Name: "basis", Required: false})
		c.Fields.Add(&core.JSONField{Name: "tags", Required: false})
		c.Fields.Add(&core.TextField{Name: "mark", Required: false})
		c.Fields.Add(&core.NumberField{Name: "width", Required: false})
		c.Fields.Add(&core.NumberField{Name: "height", Required: false})
		c.Fields.Add(&core.TextField{Name: "location_note", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "takeoff_versions", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "version_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "label", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "version_type",
			Required:  true,
			Values:    versionTypeValues,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    versionStatusValues,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "created_by", Required: false})
		// Stored as a plain record id so a version can reference an earlier
		// one in the same collection.
		c.Fields.Add(&core.TextField{Name: "parent_version", Required: false})
		c.Fields.Add(&core.JSONField{Name: "change_summary", Required: false})
		c.Fields.Add(&core.JSONField{Name: "grid_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "level_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "template_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "instance_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "finish_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "opening_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "wall_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "roof_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "truss_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "schedule_item_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "boq_data", Required: false})
		c.Fields.Add(&core.JSONField{Name: "rollup_totals", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "version_number", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    estimateStatusValues,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "prepared_by", Required: false})
		c.Fields.Add(&core.DateField{Name: "prepared_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "approved_by", Required: false})
		c.Fields.Add(&core.DateField{Name: "approved_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "reviewed_by", Required: false})
		c.Fields.Add(&core.DateField{Name: "reviewed_date", Required: false})
		c.Fields.Add(&core.JSONField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "calc_runs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "run_key", Required: true})
		c.Fields.Add(&core.TextField{Name: "created_by", Required: false})
		c.Fields.Add(&core.JSONField{Name: "takeoff_lines", Required: false, MaxSize: 5 << 20})
		c.Fields.Add(&core.JSONField{Name: "calc_errors", Required: false})
		c.Fields.Add(&core.JSONField{Name: "boq_lines", Required: false, MaxSize: 5 << 20})
		c.Fields.Add(&core.JSONField{Name: "summary", Required: false})
		c.Fields.Add(&core.DateField{Name: "generated_at", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
