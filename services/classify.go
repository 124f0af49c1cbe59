package services

import (
	"strconv"
	"strings"
)

// Part is a top-level DPWH classification bucket grouping pay items by
// construction phase.
type Part struct {
	Code string `json:"part"`
	Name string `json:"partName"`
}

var (
	partA = Part{Code: "PART A", Name: "Facilities for the Engineer"}
	partC = Part{Code: "PART C", Name: "Earthwork"}
	partD = Part{Code: "PART D", Name: "Reinforced Concrete Works"}
	partE = Part{Code: "PART E", Name: "Finishing and Other Civil Works"}
	partF = Part{Code: "PART F", Name: "Electrical Works"}
	partG = Part{Code: "PART G", Name: "Mechanical Works"}
)

// ClassifyPart maps a raw catalog item number plus category to a Part.
// The rules are ordered: explicit letter prefixes first, then the DPWH
// Volume III numeric series, then a category fallback. Unclassifiable
// inputs return nil rather than an error.
func ClassifyPart(itemNumber, category string) *Part {
	num := strings.TrimSpace(itemNumber)

	// Letter-prefixed general requirement items. "B." items (other general
	// requirements) have no Part bucket in Volume III.
	switch {
	case strings.HasPrefix(num, "A."):
		p := partA
		return &p
	case strings.HasPrefix(num, "B."):
		return nil
	}

	if series, ok := leadingSeries(num); ok {
		switch {
		case series >= 800 && series < 900:
			p := partC
			return &p
		case series >= 900 && series < 1000:
			p := partD
			return &p
		case series >= 1000 && series < 1100:
			p := partE
			return &p
		case series >= 1100 && series < 1200:
			p := partF
			return &p
		case series >= 1200 && series < 1300:
			p := partG
			return &p
		}
	}

	return partForCategory(Category(category))
}

// leadingSeries extracts the leading integer of an item number such as
// "900 (1) c2" or "1002(4)".
func leadingSeries(itemNumber string) (int, bool) {
	end := 0
	for end < len(itemNumber) && itemNumber[end] >= '0' && itemNumber[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(itemNumber[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// partForCategory is the fallback used when the item number carries no
// recognizable series, e.g. legacy or project-local codes.
func partForCategory(c Category) *Part {
	var p Part
	switch c {
	case CategoryEarthwork:
		p = partC
	case CategoryConcrete, CategoryMasonry, CategorySteelworks:
		p = partD
	case CategoryCarpentry, CategoryRoofing, CategoryPainting,
		CategoryTiling, CategoryDoorsWindows:
		p = partE
	case CategoryElectrical:
		p = partF
	case CategoryPlumbing:
		p = partG
	default:
		return nil
	}
	return &p
}
