// Package batch reads texts from uploaded files and records them in bulk.
package batch

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files that are neither .txt nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported file format (valid: .txt, .csv)")

// textColumn is the CSV header that selects the column to analyse.
const textColumn = "text"

// ParseFile reads texts from a .txt or .csv file.
func ParseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return ParseText(f)
	case ".csv":
		return ParseCSV(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ParseText returns one text per non-blank line.
func ParseText(r io.Reader) ([]string, error) {
	var texts []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		texts = append(texts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return texts, nil
}

// ParseCSV returns the values of the "text" column when the first row has
// such a header, otherwise the first column of every row. Blank cells are
// dropped.
func ParseCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := 0
	for i, cell := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(cell), textColumn) {
			col = i
			rows = rows[1:]
			break
		}
	}

	var texts []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		texts = append(texts, cell)
	}
	return texts, nil
}
