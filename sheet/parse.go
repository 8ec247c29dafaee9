package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adamspd/StudyNotes/models"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// naValues are the cell texts a spreadsheet export leaves for missing values.
var naValues = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Parse decodes an export in the given format.
func Parse(data []byte, format string, cols Columns, source string) (*models.Table, error) {
	switch strings.ToLower(format) {
	case FormatCSV, "":
		return ParseCSV(bytes.NewReader(data), cols, source)
	case FormatXLSX:
		return ParseXLSX(bytes.NewReader(data), cols, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func ParseCSV(r io.Reader, cols Columns, source string) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}

	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return buildTable(records[0], records[1:], cols, source), nil
}

func ParseXLSX(r io.Reader, cols Columns, source string) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return buildTable(rows[0], rows[1:], cols, source), nil
}

func buildTable(header []string, records [][]string, cols Columns, source string) *models.Table {
	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns = append(columns, name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range cols.Headers() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}

	table := &models.Table{
		Columns:        columns,
		MissingColumns: missing,
		Source:         source,
		LoadedAt:       time.Now(),
	}

	for _, record := range records {
		if isEmptyRecord(record) {
			continue
		}
		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			value := strings.TrimSpace(record[i])
			if naValues[value] {
				return ""
			}
			return value
		}

		table.Rows = append(table.Rows, models.Row{
			Index:         len(table.Rows),
			Subject:       cell(cols.Subject),
			MainCategory:  cell(cols.MainCategory),
			SubCategory:   cell(cols.SubCategory),
			SubNumber:     cell(cols.SubNumber),
			Label:         cell(cols.Label),
			LabelNumber:   cell(cols.LabelNumber),
			Concept:       cell(cols.Concept),
			ConceptImage:  cell(cols.ConceptImage),
			Problem:       cell(cols.Problem),
			ProblemNumber: cell(cols.ProblemNumber),
			ProblemImage:  cell(cols.ProblemImage),
			Answer:        cell(cols.Answer),
			Years:         cell(cols.Years),
			Frequency:     ParseFrequency(cell(cols.Frequency)),
			PK:            cell(cols.PK),
			FPK:           cell(cols.FPK),
		})
	}

	AssignGroups(table.Rows)
	return table
}

// ParseFrequency coerces a cell to an integer count, truncating fractions and
// clamping to the int range. Non-numeric values count as 0.
func ParseFrequency(value string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
