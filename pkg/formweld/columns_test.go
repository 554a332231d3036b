package formweld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSetRow(t *testing.T) {
	ds := &DataSet{
		Headers: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Alice", "100"},
			{"Bob", "200"},
		},
	}

	row := ds.Row(0)
	assert.Equal(t, map[string]string{"Name": "Alice", "Amount": "100"}, row)

	row = ds.Row(1)
	assert.Equal(t, "Bob", row["Name"])
}

func TestDataSetRowOutOfRange(t *testing.T) {
	ds := &DataSet{Headers: []string{"Name"}, Rows: [][]string{{"Alice"}}}
	assert.Empty(t, ds.Row(-1))
	assert.Empty(t, ds.Row(5))
}

func TestDataSetRowShortRow(t *testing.T) {
	ds := &DataSet{
		Headers: []string{"Name", "Amount"},
		Rows:    [][]string{{"Alice"}},
	}

	row := ds.Row(0)
	assert.Equal(t, "Alice", row["Name"])
	_, ok := row["Amount"]
	assert.False(t, ok)
}

func TestDataSetRowMaps(t *testing.T) {
	ds := &DataSet{
		Headers: []string{"Name"},
		Rows:    [][]string{{"Alice"}, {"Bob"}},
	}

	maps := ds.RowMaps()
	require.Len(t, maps, 2)
	assert.Equal(t, "Alice", maps[0]["Name"])
	assert.Equal(t, "Bob", maps[1]["Name"])
}

func TestDataSetColumns(t *testing.T) {
	ds := &DataSet{
		Headers: []string{"Name", "Amount", "OpenedOn", "Mixed"},
		Rows: [][]string{
			{"Alice", "100", "2024-01-15", "10"},
			{"Bob", "2,500.75", "2024-02-20", "abc"},
		},
	}

	columns := ds.Columns()
	require.Len(t, columns, 4)

	assert.Equal(t, "Name", columns[0].Name)
	assert.Equal(t, "Alice", columns[0].SampleValue)
	assert.Equal(t, ColumnText, columns[0].InferredType)

	assert.Equal(t, ColumnNumber, columns[1].InferredType)
	assert.Equal(t, ColumnDate, columns[2].InferredType)
	assert.Equal(t, ColumnText, columns[3].InferredType)
}

func TestDataSetColumnsEmptyColumn(t *testing.T) {
	ds := &DataSet{
		Headers: []string{"Empty"},
		Rows:    [][]string{{""}, {"  "}},
	}

	columns := ds.Columns()
	require.Len(t, columns, 1)
	assert.Equal(t, "", columns[0].SampleValue)
	assert.Equal(t, ColumnText, columns[0].InferredType)
}

func TestInferColumnTypeIgnoresBlankCells(t *testing.T) {
	ds := &DataSet{
		Headers: []string{"Amount"},
		Rows:    [][]string{{""}, {"100"}, {"200"}},
	}

	columns := ds.Columns()
	assert.Equal(t, ColumnNumber, columns[0].InferredType)
	assert.Equal(t, "100", columns[0].SampleValue)
}

func TestColumnTypeString(t *testing.T) {
	assert.Equal(t, "text", ColumnText.String())
	assert.Equal(t, "number", ColumnNumber.String())
	assert.Equal(t, "date", ColumnDate.String())
}
