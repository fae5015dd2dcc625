package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"estate-explorer/models"
	"estate-explorer/services"
)

// CSVWriter exports transaction table pages to a CSV file, one row per
// record in the same columns the table shows. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	unit   models.AreaUnit
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row for unit. Intermediate directories are created automatically.
func NewCSVWriter(path string, unit models.AreaUnit) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"순번", "유형", "거래일", "지역", "법정동", "단지/건물명", services.AreaHeader(unit), "층", "가격",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w, unit: unit}, nil
}

// WritePage appends the records of one page. Rows are numbered by their
// position in the full result, starting at info.Start+1.
func (c *CSVWriter) WritePage(page []models.TransactionRecord, info models.PageInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range page {
		date := r.DateStr
		if date == "" {
			date = "-"
		}
		row := []string{
			strconv.Itoa(info.Start + i + 1),
			services.TypeLabel(r),
			date,
			r.RegionName,
			r.Neighborhood,
			services.FormatName(r),
			services.FormatArea(r.AreaSqm, c.unit),
			services.FormatFloor(r.Floor),
			services.FormatTradePrice(r),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
