package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"time"

	"github.com/kalashala/kalashala/core"
)

var header = []string{"Date", "StudentName", "Status", "Class", "Location"}

// WriteCSV writes a header line then one line per row, quoting fields as needed.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date.In(time.Local).Format(core.DateLayout),
			row.StudentName,
			row.Status,
			row.ClassName,
			row.LocationName,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportText returns rows as CSV text.
func ExportText(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
