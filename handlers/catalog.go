package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// catalogItemResponse is one catalog entry with its derived classification.
type catalogItemResponse struct {
	services.CatalogItem
	Part  *services.Part `json:"classification,omitempty"`
	Trade services.Trade `json:"trade"`
}

// HandleCatalogList returns a handler that lists the pay item catalog, with
// optional ?category= filtering.
func HandleCatalogList(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		category := strings.TrimSpace(e.Request.URL.Query().Get("category"))

		items := []catalogItemResponse{}
		for _, item := range catalog.Items() {
			if category != "" && item.Category != category {
				continue
			}
			items = append(items, catalogItemResponse{
				CatalogItem: item,
				Part:        item.Part(),
				Trade:       services.TradeForCategory(services.Category(item.Category)),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": items,
			"total": len(items),
		})
	}
}

// HandleCatalogClassify returns a handler that classifies a single item
// number and category pair without requiring a catalog entry.
func HandleCatalogClassify(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemNumber := strings.TrimSpace(e.Request.URL.Query().Get("item"))
		if itemNumber == "" {
			return respondError(e, &services.ValidationError{Field: "item", Message: "item number is required"})
		}

		category := strings.TrimSpace(e.Request.URL.Query().Get("category"))
		if item, found := catalog.Lookup(itemNumber); found && category == "" {
			category = item.Category
		}

		return e.JSON(http.StatusOK, map[string]any{
			"itemNumber":     itemNumber,
			"category":       category,
			"classification": services.ClassifyPart(itemNumber, category),
			"trade":          services.TradeForCategory(services.Category(category)),
		})
	}
}

// HandleTradeView returns a handler that resolves one category to its trade.
func HandleTradeView() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		category := e.Request.PathValue("category")
		if !services.ValidCategory(category) {
			return respondError(e, &services.ValidationError{Field: "category", Message: "unknown category " + category})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"category": category,
			"trade":    services.TradeForCategory(services.Category(category)),
		})
	}
}

// HandleTradeList returns a handler that lists the category to trade mapping.
func HandleTradeList() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		trades := make(map[string]services.Trade, len(services.Categories))
		for _, c := range services.Categories {
			trades[string(c)] = services.TradeForCategory(c)
		}
		return e.JSON(http.StatusOK, map[string]any{
			"categories": services.CategoryValues(),
			"trades":     trades,
		})
	}
}
