package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// scheduleItemInput is the JSON body for schedule item create/update.
type scheduleItemInput struct {
	Category       string   `json:"category"`
	DPWHItemNumber string   `json:"dpwhItemNumber"`
	Description    string   `json:"description"`
	Unit           string   `json:"unit"`
	Quantity       float64  `json:"quantity"`
	Basis          string   `json:"basis"`
	Tags           []string `json:"tags"`
	Mark           string   `json:"mark"`
	Width          float64  `json:"width"`
	Height         float64  `json:"height"`
	LocationNote   string   `json:"locationNote"`
	SortOrder      int      `json:"sortOrder"`
}

func (in *scheduleItemInput) validate(catalog *services.Catalog) error {
	if !services.ValidCategory(in.Category) {
		return &services.ValidationError{Field: "category", Message: "unknown category " + in.Category}
	}
	if strings.TrimSpace(in.DPWHItemNumber) == "" {
		return &services.ValidationError{Field: "dpwhItemNumber", Message: "DPWH item number is required"}
	}
	if strings.TrimSpace(in.Unit) == "" {
		return &services.ValidationError{Field: "unit", Message: "unit is required"}
	}
	if in.Quantity < 0 {
		return &services.ValidationError{Field: "quantity", Message: "quantity must not be negative"}
	}
	if item, found := catalog.Lookup(in.DPWHItemNumber); found && item.Unit != in.Unit {
		return &services.ValidationError{Field: "unit", Message: "unit " + in.Unit + " does not match catalog unit " + item.Unit}
	}
	return nil
}

func (in *scheduleItemInput) apply(record *core.Record) {
	record.Set("category", in.Category)
	record.Set("dpwh_item_number", strings.TrimSpace(in.DPWHItemNumber))
	record.Set("description", in.Description)
	record.Set("unit", strings.TrimSpace(in.Unit))
	record.Set("quantity", in.Quantity)
	record.Set("basis", in.Basis)
	record.Set("tags", in.Tags)
	record.Set("mark", in.Mark)
	record.Set("width", in.Width)
	record.Set("height", in.Height)
	record.Set("location_note", in.LocationNote)
	if in.SortOrder > 0 {
		record.Set("sort_order", in.SortOrder)
	}
}

// scheduleItemFromRecord converts a stored record into the calculation input
// shape.
func scheduleItemFromRecord(r *core.Record) services.ScheduleItem {
	item := services.ScheduleItem{
		ID:             r.Id,
		Category:       services.Category(r.GetString("category")),
		DPWHItemNumber: r.GetString("dpwh_item_number"),
		Description:    r.GetString("description"),
		Unit:           r.GetString("unit"),
		Quantity:       r.GetFloat("quantity"),
		Basis:          r.GetString("basis"),
		Mark:           r.GetString("mark"),
		Width:          r.GetFloat("width"),
		Height:         r.GetFloat("height"),
		LocationNote:   r.GetString("location_note"),
	}
	var tags []string
	if err := r.UnmarshalJSONField("tags", &tags); err == nil {
		item.Tags = tags
	}
	return item
}

// loadScheduleItems fetches a project's schedule items in sort order.
func loadScheduleItems(app *pocketbase.PocketBase, projectID string) ([]services.ScheduleItem, error) {
	records, err := app.FindRecordsByFilter(
		"schedule_items",
		"project = {:project}",
		"sort_order,created", 0, 0,
		map[string]any{"project": projectID},
	)
	if err != nil {
		return nil, err
	}

	items := make([]services.ScheduleItem, 0, len(records))
	for _, r := range records {
		items = append(items, scheduleItemFromRecord(r))
	}
	return items, nil
}

// requireProject resolves the {projectId} path value to a project record.
func requireProject(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, error) {
	projectID := e.Request.PathValue("projectId")
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return nil, &services.NotFoundError{Entity: "project", ID: projectID}
	}
	return project, nil
}

// HandleScheduleItemList returns a handler that lists a project's schedule
// items.
func HandleScheduleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		items, err := loadScheduleItems(app, project.Id)
		if err != nil {
			log.Printf("schedule_items: could not list items: %v", err)
			return respondError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project": project.Id,
			"items":   items,
			"total":   len(items),
		})
	}
}

// HandleScheduleItemCreate returns a handler that adds one schedule item.
func HandleScheduleItemCreate(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requireProject(app, e)
		if err != nil {
			return respondError(e, err)
		}

		var in scheduleItemInput
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}
		if err := in.validate(catalog); err != nil {
			return respondError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("schedule_items")
		if err != nil {
			log.Printf("schedule_items: could not find collection: %v", err)
			return respondError(e, err)
		}

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		in.apply(record)
		if err := app.Save(record); err != nil {
			log.Printf("schedule_items: could not save item: %v", err)
			return respondError(e, err)
		}

		return e.JSON(http.StatusCreated, scheduleItemFromRecord(record))
	}
}

// HandleScheduleItemUpdate returns a handler that replaces one schedule item.
func HandleScheduleItemUpdate(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("schedule_items", itemID)
		if err != nil {
			return respondError(e, &services.NotFoundError{Entity: "schedule item", ID: itemID})
		}

		var in scheduleItemInput
		if err := e.BindBody(&in); err != nil {
			return respondError(e, &services.ValidationError{Field: "body", Message: "invalid JSON body"})
		}
		if err := in.validate(catalog); err != nil {
			return respondError(e, err)
		}

		in.apply(record)
		if err := app.Save(record); err != nil {
			log.Printf("schedule_items: could not update item %s: %v", itemID, err)
			return respondError(e, err)
		}

		return e.JSON(http.StatusOK, scheduleItemFromRecord(record))
	}
}

// HandleScheduleItemDelete returns a handler that removes one schedule item.
func HandleScheduleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("schedule_items", itemID)
		if err != nil {
			return respondError(e, &services.NotFoundError{Entity: "schedule item", ID: itemID})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("schedule_items: could not delete item %s: %v", itemID, err)
			return respondError(e, err)
		}

		return e.NoContent(http.StatusNoContent)
	}
}
