package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/TreeFit/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each region label's QR code.
type LabelInfo struct {
	RegionLabel string `json:"label"`
	RegionID    string `json:"id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Presents    int    `json:"presents"`
	Fits        bool   `json:"fits"`
	Decision    string `json:"decision"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per evaluated region.
// Each label shows the region name, size and verdict, and its QR code
// carries the same data as JSON. Labels are laid out on a standard label
// sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, report model.Report) error {
	labels := CollectLabelInfos(report)
	if len(labels) == 0 {
		return ErrEmptyReport
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.RegionLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", n, info.RegionID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	regionLabel := info.RegionLabel
	if pdf.GetStringWidth(regionLabel) > textW {
		for len(regionLabel) > 0 && pdf.GetStringWidth(regionLabel+"...") > textW {
			regionLabel = regionLabel[:len(regionLabel)-1]
		}
		regionLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, regionLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%d x %d, %d presents", info.Width, info.Height, info.Presents)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	if info.Fits {
		pdf.SetTextColor(30, 130, 40)
	} else {
		pdf.SetTextColor(180, 0, 0)
	}
	pdf.SetXY(textX, y+labelPadding+9)
	verdict := "NO FIT"
	if info.Fits {
		verdict = "FITS"
	}
	pdf.CellFormat(textW, 3.5, verdict, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, info.Decision, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a report, one per region.
func CollectLabelInfos(report model.Report) []LabelInfo {
	var labels []LabelInfo
	for _, r := range report.Results {
		labels = append(labels, LabelInfo{
			RegionLabel: r.Region.Label,
			RegionID:    r.Region.ID,
			Width:       r.Region.Width,
			Height:      r.Region.Height,
			Presents:    r.Region.TotalPresents(),
			Fits:        r.Fits,
			Decision:    string(r.Decision),
		})
	}
	return labels
}
