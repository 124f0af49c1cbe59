package services

import (
	"fmt"
	"time"
)

// BOQExportRow is one printable row of a BOQ export. Level 0 rows are part
// section headers; level 1 rows are the aggregated pay item lines.
type BOQExportRow struct {
	Level       int
	Index       string
	ItemNumber  string
	Description string
	Unit        string
	Quantity    float64
}

// BOQExportData is the render-ready shape shared by the Excel and PDF
// exporters.
type BOQExportData struct {
	ProjectName     string
	ReferenceNumber string
	GeneratedDate   string
	Rows            []BOQExportRow
	TotalLines      int
}

// partOrder fixes the section ordering of exports.
var partOrder = []string{"PART A", "PART C", "PART D", "PART E", "PART F", "PART G"}

// BuildBOQExport groups BOQ lines into part sections and numbers them for
// printing. Lines without a part classification land in a trailing
// "Unclassified" section.
func BuildBOQExport(projectName, referenceNumber string, lines []BOQLine, generated time.Time) BOQExportData {
	data := BOQExportData{
		ProjectName:     projectName,
		ReferenceNumber: referenceNumber,
		GeneratedDate:   generated.Format("2006-01-02"),
		TotalLines:      len(lines),
	}

	byPart := map[string][]BOQLine{}
	partNames := map[string]string{}
	for _, line := range lines {
		part := line.Part
		if part == "" {
			part = "unclassified"
		}
		byPart[part] = append(byPart[part], line)
		if line.PartName != "" {
			partNames[part] = line.PartName
		}
	}

	sections := append([]string{}, partOrder...)
	sections = append(sections, "unclassified")

	index := 0
	for _, part := range sections {
		group, ok := byPart[part]
		if !ok {
			continue
		}

		header := part
		if name := partNames[part]; name != "" {
			header = fmt.Sprintf("%s — %s", part, name)
		}
		if part == "unclassified" {
			header = "Unclassified Items"
		}
		data.Rows = append(data.Rows, BOQExportRow{Level: 0, Description: header})

		for _, line := range group {
			index++
			data.Rows = append(data.Rows, BOQExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d", index),
				ItemNumber:  line.ItemNumber,
				Description: line.Description,
				Unit:        line.Unit,
				Quantity:    line.Quantity,
			})
		}
	}

	return data
}
