package spreadsheet

import (
	"anhthu_server/lib"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by column header. Sparse cells stay
// absent from the map rather than being zero-filled.
type Row map[string]string

// Has reports whether the row carries a value for the column.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && strings.TrimSpace(v) != ""
}

// String returns the trimmed cell text, or "" when the cell is absent.
func (r Row) String(key string) string {
	return strings.TrimSpace(r[key])
}

// Float parses the cell as a number. Thousand separators are tolerated
// ("254,000" -> 254000). Malformed or absent cells coerce to 0.
func (r Row) Float(key string) float64 {
	raw := strings.ReplaceAll(r.String(key), ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// Int parses the cell as an integer, truncating any fraction.
func (r Row) Int(key string) int {
	return int(r.Float(key))
}

// Read loads the first sheet of an .xlsx file into rows keyed by column
// header. headerOffset is the number of leading non-data rows before the
// header row (the source exports carry 0, 2 or 3 of them).
//
// A missing file returns an error wrapping lib.ErrMissingFile so callers can
// report it and continue with the remaining sources. Rows whose first cell
// repeats the header label (exports sometimes embed a second header row in
// the data) are skipped.
func Read(path string, headerOffset int) ([]Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", lib.ErrMissingFile, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	if len(cells) <= headerOffset {
		return nil, fmt.Errorf("%s has no header row at offset %d", path, headerOffset)
	}

	headers := make([]string, len(cells[headerOffset]))
	for i, h := range cells[headerOffset] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, line := range cells[headerOffset+1:] {
		row := make(Row, len(headers))
		for i, value := range line {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			row[headers[i]] = value
		}

		if len(row) == 0 {
			continue
		}

		// Skip header rows embedded in the data
		if len(headers) > 0 && row.String(headers[0]) == headers[0] {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}
