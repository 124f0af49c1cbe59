package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateBOQPDF creates a PDF document from BOQ export data using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateBOQPDF(data BOQExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBOQHeader(m, data)
	addBOQTableHeader(m)
	for _, r := range data.Rows {
		addBOQTableRow(m, r)
	}
	addBOQFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addBOQHeader adds the title, reference number and generation date.
func addBOQHeader(m core.Maroto, data BOQExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Bill of Quantities — "+data.ProjectName, props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", data.ReferenceNumber), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addBOQTableHeader adds the column header row of the BOQ table.
func addBOQTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Pay Item", headerText),
			).WithStyle(&headerCell),
			col.New(6).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Quantity", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addBOQTableRow adds a part header or pay item line, styled by level.
func addBOQTableRow(m core.Maroto, r BOQExportRow) {
	if r.Level == 0 {
		bg := &props.Color{Red: 232, Green: 232, Blue: 232}
		cellStyle := &props.Cell{BackgroundColor: bg}
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(
					text.New(r.Description, props.Text{
						Size:  8,
						Style: fontstyle.Bold,
						Align: align.Left,
					}),
				).WithStyle(cellStyle),
			),
		)
		return
	}

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(1).Add(text.New(r.Index, baseText)),
			col.New(2).Add(text.New(r.ItemNumber, leftText)),
			col.New(6).Add(text.New(r.Description, leftText)),
			col.New(1).Add(text.New(r.Unit, baseText)),
			col.New(2).Add(text.New(FormatQuantity(r.Quantity), rightText)),
		),
	)
}

// addBOQFooter adds the line-count summary and generated-date line.
func addBOQFooter(m core.Maroto, data BOQExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(
				text.New("Total BOQ Lines", props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(summaryCell),
			col.New(3).Add(
				text.New(fmt.Sprintf("%d", data.TotalLines), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(row.New(4))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
