// Package importer reads puzzles from the text puzzle format and region
// lists from CSV and Excel files. Region lists support automatic delimiter
// detection and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a region import.
type ImportResult struct {
	Regions  []model.TreeRegion
	Errors   []string
	Warnings []string
}

// ColumnMapping maps the region columns to their indices in the data.
// Counts lists the present count columns in present order; -1 marks a
// present with no column.
type ColumnMapping struct {
	Label  int
	Width  int
	Height int
	Counts []int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "region", "tree", "description", "desc"},
	"width":  {"width", "w", "cols", "x"},
	"height": {"height", "h", "rows", "y"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// countPrefixes are stripped from a header cell before reading it as a
// present index, so "P0", "present 0", "count0" and "0" all name present 0.
var countPrefixes = []string{"present", "count", "shape", "p"}

// DetectColumns examines a header row and returns a ColumnMapping.
// Label, width and height are matched case-insensitively against known
// aliases. Count columns are ordered by the present index in their header;
// other columns are ignored.
// Returns a positional mapping (label, width, height, counts...) and false
// when the row is not a header.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1}

	isHeader := false
	counts := map[int]int{}
	maxIndex := -1
	for i, cell := range row {
		switch headerRole(cell) {
		case "label":
			if mapping.Label == -1 {
				mapping.Label = i
			}
			isHeader = true
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
			isHeader = true
		case "height":
			if mapping.Height == -1 {
				mapping.Height = i
			}
			isHeader = true
		default:
			if idx, ok := countIndex(cell); ok {
				if _, dup := counts[idx]; !dup {
					counts[idx] = i
					maxIndex = max(maxIndex, idx)
				}
			}
		}
	}

	for idx := 0; idx <= maxIndex; idx++ {
		col, ok := counts[idx]
		if !ok {
			col = -1
		}
		mapping.Counts = append(mapping.Counts, col)
	}

	if !isHeader {
		return positionalMapping(len(row)), false
	}
	return mapping, true
}

func headerRole(cell string) string {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	for role, aliases := range headerAliases {
		for _, alias := range aliases {
			if normalized == alias {
				return role
			}
		}
	}
	return ""
}

func countIndex(cell string) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	for _, prefix := range countPrefixes {
		if rest, ok := strings.CutPrefix(normalized, prefix); ok {
			normalized = strings.TrimSpace(rest)
			break
		}
	}
	n, err := strconv.Atoi(normalized)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func positionalMapping(columns int) ColumnMapping {
	m := ColumnMapping{Label: 0, Width: 1, Height: 2}
	for i := 3; i < columns; i++ {
		m.Counts = append(m.Counts, i)
	}
	return m
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a region from a row using the given column mapping.
// Returns the region and an error message, if any.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, regionCount int) (model.TreeRegion, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Region %d", regionCount+1)
	}

	width, msg := parseDimension(getCell(row, mapping.Width), "width", rowLabel)
	if msg != "" {
		return model.TreeRegion{}, msg
	}
	height, msg := parseDimension(getCell(row, mapping.Height), "height", rowLabel)
	if msg != "" {
		return model.TreeRegion{}, msg
	}

	counts := make([]int, len(mapping.Counts))
	for i, col := range mapping.Counts {
		s := getCell(row, col)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return model.TreeRegion{}, fmt.Sprintf("%s: Invalid count '%s' for present %d", rowLabel, s, i)
		}
		counts[i] = n
	}

	return model.NewTreeRegion(label, width, height, counts), ""
}

func parseDimension(s, name, rowLabel string) (int, string) {
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if n <= 0 {
		return 0, fmt.Sprintf("%s: Width and height must be positive", rowLabel)
	}
	return n, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportRegionsCSV imports regions from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportRegionsCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportRegionsCSVFromReader imports regions from a CSV reader with a known delimiter.
func ImportRegionsCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportRegionsExcel imports regions from the first sheet of an Excel file.
func ImportRegionsExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	widest := 0
	for _, row := range rows {
		widest = max(widest, len(row))
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		mapping = positionalMapping(widest)
		if len(rows[0]) >= 3 {
			if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
				// Unrecognised header: skip it but keep positional columns.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		region, errMsg := parseRow(row, mapping, rowLabel, len(result.Regions))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Regions = append(result.Regions, region)
	}

	return result
}
