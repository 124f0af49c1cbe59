// Package services implements the quantity takeoff to Bill-of-Quantities
// pipeline: catalog classification, schedule calculation, BOQ aggregation,
// takeoff versioning and the estimate approval workflow.
package services

// CatalogItem is one immutable DPWH Volume III pay item. Loaded once at
// process start; never mutated at runtime.
type CatalogItem struct {
	ItemNumber  string `json:"itemNumber"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
}

// Part returns the derived Part classification for this item, or nil when
// the item cannot be classified.
func (ci CatalogItem) Part() *Part {
	return ClassifyPart(ci.ItemNumber, ci.Category)
}

// Catalog is the read-only pay item reference dataset. It is constructed
// once in main and passed by reference into the calculator, generator and
// handlers — never reached through package-level state.
type Catalog struct {
	items []CatalogItem
	index map[string]int
}

// NewCatalog builds a catalog from the given items. Later duplicates of an
// item number are ignored; the first definition wins.
func NewCatalog(items []CatalogItem) *Catalog {
	c := &Catalog{
		items: make([]CatalogItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, exists := c.index[it.ItemNumber]; exists {
			continue
		}
		c.index[it.ItemNumber] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// DefaultCatalog returns the embedded DPWH Volume III dataset.
func DefaultCatalog() *Catalog {
	return NewCatalog(dpwhVolumeIII)
}

// Lookup resolves a pay item by its item number.
func (c *Catalog) Lookup(itemNumber string) (CatalogItem, bool) {
	i, ok := c.index[itemNumber]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}

// Items returns the catalog in its load order.
func (c *Catalog) Items() []CatalogItem {
	out := make([]CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of pay items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
