// AngelaMos | 2026
// parser.go

package file

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sheetlens/api/internal/core"
)

// SheetData is the first worksheet flattened for the client: the first
// row becomes the header list, every following row becomes a map keyed
// by header name, in sheet order.
type SheetData struct {
	Headers []string
	Rows    []map[string]string
}

// ParseSheet reads the first sheet of an xlsx workbook. A workbook that
// cannot be opened surfaces as core.ErrParse. A sheet with no rows at
// all yields empty headers and no data; a header row with zero data
// rows yields the headers and an empty row slice. Neither is an error.
func ParseSheet(r io.Reader) (*SheetData, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %v: %w", err, core.ErrParse)
	}
	//nolint:errcheck // read-only workbook, nothing to flush
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", core.ErrParse)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %v: %w", sheets[0], err, core.ErrParse)
	}

	if len(rows) == 0 {
		return &SheetData{
			Headers: []string{},
			Rows:    []map[string]string{},
		}, nil
	}

	headers := rows[0]

	data := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		data = append(data, record)
	}

	return &SheetData{
		Headers: headers,
		Rows:    data,
	}, nil
}
