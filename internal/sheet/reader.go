// Package sheet reads tabular spreadsheet files into raw string tables.
// All cells arrive as strings with empty-cell default ""; interpretation
// belongs to the ingestion pipeline, not the reader.
package sheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv
// and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table is a raw sheet: the first row's trimmed cells as headers and
// every following non-blank row padded to the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadFile opens and parses a spreadsheet from disk.
func ReadFile(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	return Read(filename, f)
}

// Read parses the spreadsheet behind r, dispatching on the file
// extension. The first row is taken as headers; fully blank rows are
// dropped; short rows are padded with "" so every row matches the header
// width.
func Read(filename string, r io.Reader) (*Table, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(payload) == 0 {
		return nil, errors.New("file is empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return readCSV(payload)
	case ".xlsx":
		return readExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// readCSV parses a CSV payload, discarding a UTF-8 byte order mark when
// one is present.
func readCSV(payload []byte) (*Table, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return buildTable(records)
}

// readExcel parses the first worksheet of an xlsx payload.
func readExcel(payload []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return buildTable(rows)
}

// buildTable turns raw records into a Table: the first non-blank row
// becomes the headers, everything after it becomes a padded data row.
// Blank rows after the header are kept so ingestion can report them with
// their real row numbers.
func buildTable(records [][]string) (*Table, error) {
	var headers []string
	var rows [][]string

	for _, record := range records {
		if headers == nil {
			if isBlankRow(record) {
				continue
			}
			headers = make([]string, len(record))
			for i, cell := range record {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}
		rows = append(rows, padRow(record, len(headers)))
	}

	if headers == nil {
		return nil, errors.New("no header row found")
	}

	// Trailing blank rows are formatting residue, not data; interior blank
	// rows stay so they can be reported.
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
