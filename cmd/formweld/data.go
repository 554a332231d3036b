package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/formweld/go-formweld/pkg/formweld"
)

// loadDataSet reads a CSV file into the headers-plus-rows form the engine
// consumes. The first record is the header row.
func loadDataSet(path string) (*formweld.DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	return &formweld.DataSet{
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}
