// Package export writes evaluation reports to PDF, label sheets and Excel.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/TreeFit/internal/model"
)

// ErrEmptyReport is returned when a report has no regions to export.
var ErrEmptyReport = errors.New("report has no regions")

// presentColor represents an RGB color for a placed present.
type presentColor struct {
	R, G, B int
}

// presentColors is indexed by present index, wrapping around.
var presentColors = []presentColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(presentIndex int) presentColor {
	if presentIndex < 0 {
		return presentColor{R: 120, G: 120, B: 120}
	}
	return presentColors[presentIndex%len(presentColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	maxCellSize  = 12.0
)

// ExportPDF renders one page per region, drawing the witness packing when
// the report kept one, followed by a summary page.
func ExportPDF(path string, report model.Report) error {
	if len(report.Results) == 0 {
		return ErrEmptyReport
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, result := range report.Results {
		pdf.AddPage()
		renderRegionPage(pdf, result, report.Presents, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	return pdf.OutputFileAndClose(path)
}

// renderRegionPage draws a single region result on the current PDF page.
func renderRegionPage(pdf *fpdf.Fpdf, result model.RegionResult, presents []model.Present, regionNum int) {
	region := result.Region

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Region %d: %s (%d x %d)", regionNum, region.Label, region.Width, region.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Presents: %d | Required: %d cells | Region: %d cells | Fill: %.1f%% | %s (%s)",
		result.Stats.PresentCount, result.Stats.RequiredArea, result.Stats.RegionArea,
		result.Stats.FillPercent, verdictText(result), result.Decision)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if region.Width <= 0 || region.Height <= 0 {
		drawNote(pdf, drawAreaTop, "Region is malformed: "+result.Error)
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	cell := math.Min(drawWidth/float64(region.Width), drawHeight/float64(region.Height))
	cell = math.Min(cell, maxCellSize)

	canvasW := float64(region.Width) * cell
	canvasH := float64(region.Height) * cell
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Region background
	pdf.SetFillColor(245, 240, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawGridLines(pdf, region, cell, offsetX, offsetY)

	for _, p := range result.Witness {
		col := colorFor(p.PresentIndex)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		for _, rc := range placementCells(p, presents) {
			pdf.Rect(offsetX+float64(rc[1])*cell, offsetY+float64(rc[0])*cell, cell, cell, "FD")
		}
	}

	drawDimensionAnnotations(pdf, region, offsetX, offsetY, canvasW, canvasH)

	switch {
	case len(result.Witness) > 0:
		drawPresentsLegend(pdf, result, presents, offsetY+canvasH+7)
	case result.Fits:
		drawNote(pdf, offsetY+canvasH+7, "Fits by the bounding-rectangle bound; no packing was drawn.")
	default:
		drawNote(pdf, offsetY+canvasH+7, "The requested presents do not fit.")
	}
}

// placementCells returns the (row, col) region cells a witness placement covers.
func placementCells(p model.Placement, presents []model.Present) [][2]int {
	if p.PresentIndex < 0 || p.PresentIndex >= len(presents) {
		return nil
	}
	variants := presents[p.PresentIndex].ShapeVariations
	if p.Variant < 0 || p.Variant >= len(variants) {
		return nil
	}
	shape := variants[p.Variant]
	var cells [][2]int
	for r := 0; r < shape.Height(); r++ {
		for c := 0; c < shape.Width(); c++ {
			if shape.Filled(r, c) {
				cells = append(cells, [2]int{p.Row + r, p.Col + c})
			}
		}
	}
	return cells
}

func drawGridLines(pdf *fpdf.Fpdf, region model.TreeRegion, cell, offsetX, offsetY float64) {
	if cell < 2 {
		return
	}
	pdf.SetDrawColor(210, 200, 180)
	pdf.SetLineWidth(0.1)
	for c := 1; c < region.Width; c++ {
		x := offsetX + float64(c)*cell
		pdf.Line(x, offsetY, x, offsetY+float64(region.Height)*cell)
	}
	for r := 1; r < region.Height; r++ {
		y := offsetY + float64(r)*cell
		pdf.Line(offsetX, y, offsetX+float64(region.Width)*cell, y)
	}
}

// drawDimensionAnnotations adds width and height labels outside the region rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, region model.TreeRegion, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", region.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", region.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPresentsLegend lists the requested present types with their colors.
func drawPresentsLegend(pdf *fpdf.Fpdf, result model.RegionResult, presents []model.Present, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Presents placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, n := range result.Region.PresentsToFit {
		if n == 0 || i >= len(presents) {
			continue
		}
		col := colorFor(i)
		label := fmt.Sprintf("%s x%d (%d cells)", presents[i].Label, n, presents[i].CoveredArea)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func drawNote(pdf *fpdf.Fpdf, y float64, text string) {
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, text, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, report model.Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	title := "Packing Summary"
	if report.Name != "" {
		title += ": " + report.Name
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	searched, nodes := searchTotals(report)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Regions", fmt.Sprintf("%d", report.RegionCount())},
		{"Regions That Fit", fmt.Sprintf("%d", report.FitCount)},
		{"Present Types", fmt.Sprintf("%d", len(report.Presents))},
		{"Regions Searched", fmt.Sprintf("%d", searched)},
		{"Search Nodes", fmt.Sprintf("%d", nodes)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Region Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 60, 30, 25, 30, 35, 35, 37}
	headers := []string{"#", "Region", "Size", "Presents", "Fill", "Result", "Decision", "Nodes"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, result := range report.Results {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			result.Region.Label,
			fmt.Sprintf("%d x %d", result.Region.Width, result.Region.Height),
			fmt.Sprintf("%d", result.Stats.PresentCount),
			fmt.Sprintf("%.1f%%", result.Stats.FillPercent),
			verdictText(result),
			string(result.Decision),
			fmt.Sprintf("%d", result.NodesVisited),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TreeFit - Present Packing Checker", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func verdictText(result model.RegionResult) string {
	switch {
	case result.Decision == model.DecisionInvalid:
		return "INVALID"
	case result.Fits:
		return "FITS"
	default:
		return "NO FIT"
	}
}

// searchTotals returns how many regions needed the search and the nodes it visited.
func searchTotals(report model.Report) (int, int) {
	searched, nodes := 0, 0
	for _, r := range report.Results {
		if r.SearchRan() {
			searched++
		}
		nodes += r.NodesVisited
	}
	return searched, nodes
}
