package export

import (
	"fmt"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	regionsSheet  = "Regions"
	presentsSheet = "Presents"
)

// ExportExcel writes the report as a workbook with a Regions sheet (one row
// per evaluated region) and a Presents sheet (one row per present type).
// The Regions sheet starts with label, width, height and the present counts,
// so it can be read back as a region list.
func ExportExcel(path string, report model.Report) error {
	if len(report.Results) == 0 {
		return ErrEmptyReport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), regionsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(presentsSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRegionsSheet(f, report, headerStyle); err != nil {
		return err
	}
	if err := writePresentsSheet(f, report, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRegionsSheet(f *excelize.File, report model.Report, headerStyle int) error {
	header := []interface{}{"Label", "Width", "Height"}
	for i := range report.Presents {
		header = append(header, fmt.Sprintf("P%d", i))
	}
	header = append(header, "Fits", "Decision", "Fill %", "Nodes", "Duration ms", "Error")

	if err := f.SetSheetRow(regionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := styleHeader(f, regionsSheet, len(header), headerStyle); err != nil {
		return err
	}

	for i, r := range report.Results {
		row := []interface{}{r.Region.Label, r.Region.Width, r.Region.Height}
		for j := range report.Presents {
			n := 0
			if j < len(r.Region.PresentsToFit) {
				n = r.Region.PresentsToFit[j]
			}
			row = append(row, n)
		}
		row = append(row, r.Fits, string(r.Decision), r.Stats.FillPercent, r.NodesVisited, r.DurationMS, r.Error)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(regionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write region %q: %w", r.Region.Label, err)
		}
	}
	return nil
}

func writePresentsSheet(f *excelize.File, report model.Report, headerStyle int) error {
	header := []interface{}{"Index", "Label", "Width", "Height", "Cells", "Variations", "Shape"}
	if err := f.SetSheetRow(presentsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := styleHeader(f, presentsSheet, len(header), headerStyle); err != nil {
		return err
	}

	for i, p := range report.Presents {
		row := []interface{}{p.Index, p.Label, p.Width, p.Height, p.CoveredArea, len(p.ShapeVariations), p.Shape().String()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(presentsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write present %d: %w", p.Index, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns, style int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
