package services

// Category is the closed set of schedule item work categories.
type Category string

const (
	CategoryEarthwork    Category = "earthwork"
	CategoryConcrete     Category = "concrete"
	CategoryMasonry      Category = "masonry"
	CategoryCarpentry    Category = "carpentry"
	CategoryRoofing      Category = "roofing"
	CategoryPlumbing     Category = "plumbing"
	CategoryElectrical   Category = "electrical"
	CategoryPainting     Category = "painting"
	CategoryTiling       Category = "tiling"
	CategorySteelworks   Category = "steelworks"
	CategoryDoorsWindows Category = "doors_windows"
	CategoryGeneral      Category = "general"
)

// Categories lists every valid category in display order. Used for schema
// select fields and import validation.
var Categories = []Category{
	CategoryEarthwork,
	CategoryConcrete,
	CategoryMasonry,
	CategoryCarpentry,
	CategoryRoofing,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryPainting,
	CategoryTiling,
	CategorySteelworks,
	CategoryDoorsWindows,
	CategoryGeneral,
}

// Trade is the normalized work-category label used for cost grouping.
type Trade string

const (
	TradeEarthwork  Trade = "Earthwork"
	TradeConcrete   Trade = "Concrete"
	TradeMasonry    Trade = "Masonry"
	TradeCarpentry  Trade = "Carpentry"
	TradeRoofing    Trade = "Roofing"
	TradePlumbing   Trade = "Plumbing"
	TradeElectrical Trade = "Electrical"
	TradePainting   Trade = "Painting"
	TradeTiling     Trade = "Tiling"
	TradeMetals     Trade = "Metals"
	TradeOther      Trade = "Other"
)

// TradeForCategory maps a schedule item category to its costing trade.
// Unknown categories map to TradeOther; downstream grouping depends on that
// fallback, so it must never be removed.
func TradeForCategory(c Category) Trade {
	switch c {
	case CategoryEarthwork:
		return TradeEarthwork
	case CategoryConcrete:
		return TradeConcrete
	case CategoryMasonry:
		return TradeMasonry
	case CategoryCarpentry, CategoryDoorsWindows:
		return TradeCarpentry
	case CategoryRoofing:
		return TradeRoofing
	case CategoryPlumbing:
		return TradePlumbing
	case CategoryElectrical:
		return TradeElectrical
	case CategoryPainting:
		return TradePainting
	case CategoryTiling:
		return TradeTiling
	case CategorySteelworks:
		return TradeMetals
	case CategoryGeneral:
		return TradeOther
	default:
		return TradeOther
	}
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// CategoryValues returns the categories as plain strings for select fields.
func CategoryValues() []string {
	values := make([]string, len(Categories))
	for i, c := range Categories {
		values[i] = string(c)
	}
	return values
}
