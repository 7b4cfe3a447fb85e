// Package data loads numeric datasets and cuts them into training batches.
//
// A dataset is a rank-2 tensor with one sample per row. One column holds
// the class label; the rest are features.
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/stepnet/internal/tensor"
)

var (
	// ErrEmpty is returned when a dataset has no rows.
	ErrEmpty = errors.New("data: no rows")

	// ErrRagged is returned when rows have different numbers of columns.
	ErrRagged = errors.New("data: rows have different lengths")
)

// LoadCSV reads a numeric CSV file into a [rows, cols] tensor.
//
// CSV Format (MNIST Kaggle-style, hasHeader = true):
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//	0,0,0,0,...,0
func LoadCSV(path string, hasHeader bool) (*tensor.Tensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	t, err := ReadCSV(file, hasHeader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses numeric CSV records from r. Every field must parse as a
// float64.
func ReadCSV(r io.Reader, hasHeader bool) (*tensor.Tensor, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var (
		values []float64
		rows   int
		cols   = -1
	)

	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if hasHeader && line == 1 {
			continue
		}

		if cols < 0 {
			cols = len(record)
		} else if len(record) != cols {
			return nil, fmt.Errorf("line %d: got %d fields, want %d: %w", line, len(record), cols, ErrRagged)
		}

		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value at line %d, column %d: %w", line, j+1, err)
			}
			values = append(values, v)
		}
		rows++
	}

	if rows == 0 {
		return nil, ErrEmpty
	}
	return tensor.FromSlice(values, tensor.Shape{rows, cols})
}
