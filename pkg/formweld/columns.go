package formweld

import (
	"strconv"
	"strings"
	"time"
)

// ColumnType is the heuristically inferred type of a data column
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnNumber
	ColumnDate
)

func (t ColumnType) String() string {
	switch t {
	case ColumnNumber:
		return "number"
	case ColumnDate:
		return "date"
	default:
		return "text"
	}
}

// DataColumn describes one named field of the external tabular data source
type DataColumn struct {
	Name         string
	SampleValue  string
	InferredType ColumnType
}

// DataSet is the tabular data feeding a merge: ordered headers and rows
// aligned to them by index. The engine treats it as read-only.
type DataSet struct {
	Headers []string
	Rows    [][]string
}

// typeInferenceSampleSize bounds how many rows type inference inspects
const typeInferenceSampleSize = 20

// dateLayouts are the formats recognized during column type inference
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02.01.2006",
	"2006/01/02",
	"02-01-2006",
}

// Row returns one data row as a column-name-to-value map. Missing cells
// (short rows) are omitted rather than filled in.
func (ds *DataSet) Row(i int) map[string]string {
	values := make(map[string]string, len(ds.Headers))
	if i < 0 || i >= len(ds.Rows) {
		return values
	}

	row := ds.Rows[i]
	for j, header := range ds.Headers {
		if j >= len(row) {
			break
		}
		values[header] = row[j]
	}
	return values
}

// RowMaps returns every row as a column-name-to-value map, in row order
func (ds *DataSet) RowMaps() []map[string]string {
	maps := make([]map[string]string, len(ds.Rows))
	for i := range ds.Rows {
		maps[i] = ds.Row(i)
	}
	return maps
}

// Columns describes each header with a sample value and an inferred type,
// examining at most a bounded sample of rows per column.
func (ds *DataSet) Columns() []DataColumn {
	columns := make([]DataColumn, len(ds.Headers))
	for j, header := range ds.Headers {
		sample := ds.columnSample(j)
		columns[j] = DataColumn{
			Name:         header,
			SampleValue:  firstNonEmpty(sample),
			InferredType: inferColumnType(sample),
		}
	}
	return columns
}

// columnSample collects up to typeInferenceSampleSize non-empty values of
// one column.
func (ds *DataSet) columnSample(col int) []string {
	var sample []string
	for _, row := range ds.Rows {
		if len(sample) >= typeInferenceSampleSize {
			break
		}
		if col >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[col])
		if value == "" {
			continue
		}
		sample = append(sample, value)
	}
	return sample
}

func firstNonEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// inferColumnType classifies a column from its sampled values. A column is
// numeric or date only when every sampled value parses as such; anything
// mixed falls back to text.
func inferColumnType(sample []string) ColumnType {
	if len(sample) == 0 {
		return ColumnText
	}

	allNumbers := true
	allDates := true
	for _, value := range sample {
		if allNumbers && !looksLikeNumber(value) {
			allNumbers = false
		}
		if allDates && !looksLikeDate(value) {
			allDates = false
		}
		if !allNumbers && !allDates {
			return ColumnText
		}
	}

	if allNumbers {
		return ColumnNumber
	}
	return ColumnDate
}

func looksLikeNumber(value string) bool {
	cleaned := strings.ReplaceAll(value, ",", "")
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}

func looksLikeDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
