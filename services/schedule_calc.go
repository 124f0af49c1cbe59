package services

import (
	"fmt"

	"github.com/google/uuid"
)

// ScheduleItem is one direct-quantity work item belonging to a project.
type ScheduleItem struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	DPWHItemNumber string   `json:"dpwhItemNumber"`
	Description    string   `json:"description,omitempty"`
	Unit           string   `json:"unit"`
	Quantity       float64  `json:"quantity"`
	Basis          string   `json:"basis,omitempty"`
	Tags           []string `json:"tags,omitempty"`

	// Optional geometry hints carried for traceability only.
	Mark         string  `json:"mark,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	LocationNote string  `json:"locationNote,omitempty"`
}

// TakeoffLine is a normalized, traceable quantity record derived from a
// schedule item (or another producer). Lines are never mutated after
// creation; each calculation run regenerates them wholesale.
type TakeoffLine struct {
	ID          string             `json:"id"`
	SourceID    string             `json:"sourceId"`
	Trade       Trade              `json:"trade"`
	ResourceKey string             `json:"resourceKey"`
	Quantity    float64            `json:"quantity"`
	Unit        string             `json:"unit"`
	Formula     string             `json:"formula"`
	Inputs      map[string]float64 `json:"inputs"`
	Assumptions []string           `json:"assumptions"`
	Tags        []string           `json:"tags"`
}

// ScheduleSummary counts the items that produced takeoff lines.
type ScheduleSummary struct {
	TotalItems int            `json:"totalItems"`
	ByCategory map[string]int `json:"byCategory"`
}

// ScheduleCalcResult is the outcome of one schedule calculation run.
// Errors holds per-item failures; the run itself never aborts on one bad
// item.
type ScheduleCalcResult struct {
	Lines   []TakeoffLine   `json:"takeoffLines"`
	Errors  []string        `json:"errors"`
	Summary ScheduleSummary `json:"summary"`
}

// CalculateScheduleItems folds a project's schedule items into takeoff
// lines. Invalid items are recorded in Errors and skipped; the remaining
// items still calculate. An empty input yields an empty successful result.
func CalculateScheduleItems(items []ScheduleItem) ScheduleCalcResult {
	result := ScheduleCalcResult{
		Lines:   []TakeoffLine{},
		Errors:  []string{},
		Summary: ScheduleSummary{ByCategory: map[string]int{}},
	}

	for i, item := range items {
		if err := validateScheduleItem(i, item); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		result.Lines = append(result.Lines, takeoffLineFromScheduleItem(item))
		result.Summary.TotalItems++
		result.Summary.ByCategory[string(item.Category)]++
	}

	return result
}

func validateScheduleItem(index int, item ScheduleItem) error {
	label := item.ID
	if label == "" {
		return fmt.Errorf("schedule item #%d: missing id", index+1)
	}
	if item.DPWHItemNumber == "" {
		return fmt.Errorf("schedule item %q: missing DPWH item number", label)
	}
	if item.Unit == "" {
		return fmt.Errorf("schedule item %q: missing unit", label)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("schedule item %q: negative quantity %v", label, item.Quantity)
	}
	return nil
}

// takeoffLineFromScheduleItem builds the line for a single valid item.
// Schedule items are direct-quantity, so the formula documents the copied
// quantity rather than any derivation math.
func takeoffLineFromScheduleItem(item ScheduleItem) TakeoffLine {
	assumptions := []string{}
	if item.Basis != "" {
		assumptions = append(assumptions, item.Basis)
	}
	assumptions = append(assumptions, "category: "+string(item.Category))
	if item.Description != "" {
		assumptions = append(assumptions, "description: "+item.Description)
	}

	tags := []string{
		"category:" + string(item.Category),
		"dpwh:" + item.DPWHItemNumber,
	}
	tags = append(tags, item.Tags...)

	return TakeoffLine{
		ID:          uuid.NewString(),
		SourceID:    item.ID,
		Trade:       TradeForCategory(item.Category),
		ResourceKey: fmt.Sprintf("schedule:%s:%s", item.Category, item.ID),
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		Formula:     fmt.Sprintf("direct quantity: %s %s", FormatQuantity(item.Quantity), item.Unit),
		Inputs:      map[string]float64{"quantity": item.Quantity},
		Assumptions: assumptions,
		Tags:        tags,
	}
}
