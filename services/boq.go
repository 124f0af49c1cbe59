package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/types"
)

// BOQLine is one aggregated Bill-of-Quantities line: all takeoff lines
// referencing the same catalog item, summed, with the catalog unit and
// description attached.
type BOQLine struct {
	ItemNumber  string  `json:"itemNumber"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Part        string  `json:"part,omitempty"`
	PartName    string  `json:"partName,omitempty"`
	LineCount   int     `json:"lineCount"`
}

// BOQSummary describes one generation run.
type BOQSummary struct {
	LineCount   int `json:"lineCount"`
	SourceLines int `json:"sourceLines"`
	Skipped     int `json:"skipped"`
}

// BOQResult carries the generated lines plus separate warning and error
// lists. Partial success is explicit: callers distinguish "succeeded with
// warnings" from "failed entirely" by whether any lines were produced.
type BOQResult struct {
	Lines    []BOQLine  `json:"boqLines"`
	Summary  BOQSummary `json:"summary"`
	Warnings []string   `json:"warnings"`
	Errors   []string   `json:"errors"`
}

// boqGroup accumulates one aggregation bucket while generating.
type boqGroup struct {
	line    BOQLine
	invalid bool
}

// GenerateBOQ aggregates takeoff lines into BOQ lines keyed by the catalog
// item number carried in each line's dpwh: tag. Quantities for a shared key
// are summed in input order. Lines referencing an unknown catalog item are
// skipped with a warning; a unit mismatch against the catalog invalidates
// the whole group with an error. Unrelated groups are unaffected either way.
func GenerateBOQ(lines []TakeoffLine, catalog *Catalog) BOQResult {
	result := BOQResult{
		Lines:    []BOQLine{},
		Warnings: []string{},
		Errors:   []string{},
	}
	result.Summary.SourceLines = len(lines)

	groups := map[string]*boqGroup{}
	order := []string{}

	for _, line := range lines {
		itemNumber, ok := catalogRefFromTags(line.Tags)
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("takeoff line %s (source %s): no catalog item reference", line.ID, line.SourceID))
			result.Summary.Skipped++
			continue
		}

		item, found := catalog.Lookup(itemNumber)
		if !found {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("takeoff line %s (source %s): unknown catalog item %q, excluded from aggregate", line.ID, line.SourceID, itemNumber))
			result.Summary.Skipped++
			continue
		}

		group, exists := groups[itemNumber]
		if !exists {
			boq := BOQLine{
				ItemNumber:  item.ItemNumber,
				Description: item.Description,
				Unit:        item.Unit,
			}
			if p := item.Part(); p != nil {
				boq.Part = p.Code
				boq.PartName = p.Name
			}
			group = &boqGroup{line: boq}
			groups[itemNumber] = group
			order = append(order, itemNumber)
		}

		if line.Unit != item.Unit {
			if !group.invalid {
				result.Errors = append(result.Errors,
					fmt.Sprintf("catalog item %q: unit mismatch (line %s has %q, catalog unit is %q); group excluded", itemNumber, line.ID, line.Unit, item.Unit))
			}
			group.invalid = true
			result.Summary.Skipped++
			continue
		}

		group.line.Quantity += line.Quantity
		group.line.LineCount++
	}

	for _, key := range order {
		group := groups[key]
		if group.invalid {
			result.Summary.Skipped += group.line.LineCount
			continue
		}
		result.Lines = append(result.Lines, group.line)
	}
	result.Summary.LineCount = len(result.Lines)

	return result
}

// catalogRefFromTags extracts the catalog item number from a line's tag set.
func catalogRefFromTags(tags []string) (string, bool) {
	for _, tag := range tags {
		if ref, ok := strings.CutPrefix(tag, "dpwh:"); ok && ref != "" {
			return ref, true
		}
	}
	return "", false
}

// AttachBOQToCalcRun writes generated BOQ lines into an existing calc run
// record and refreshes its summary. A missing run is a non-fatal condition:
// the returned warning is set and the caller still keeps the generated
// lines. The read-modify-write is serialized per project.
func AttachBOQToCalcRun(app *pocketbase.PocketBase, projectID, runKey string, lines []BOQLine, summary BOQSummary) (string, error) {
	unlock := lockProject(projectID)
	defer unlock()

	runs, err := app.FindRecordsByFilter(
		"calc_runs",
		"project = {:project} && run_key = {:key}",
		"", 1, 0,
		map[string]any{"project": projectID, "key": runKey},
	)
	if err != nil {
		return "", fmt.Errorf("find calc run %q: %w", runKey, err)
	}
	if len(runs) == 0 {
		return fmt.Sprintf("calc run %q not found; generated BOQ lines were not attached", runKey), nil
	}

	run := runs[0]
	run.Set("boq_lines", lines)
	run.Set("summary", summary)
	run.Set("generated_at", types.NowDateTime())
	if err := app.Save(run); err != nil {
		return "", fmt.Errorf("attach BOQ to calc run %q: %w", runKey, err)
	}
	return "", nil
}
