package fee

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/kalashala/kalashala/core"
)

var header = []string{"StudentName", "Location", "Period", "Status", "Amount", "PaymentDate"}

// WriteCSV writes a header line then one line per dashboard row.
// Unpaid rows have blank Amount and PaymentDate.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		var amount, paid string
		if row.Amount.Valid {
			amount = row.Amount.Decimal.StringFixed(2)
		}
		if row.PaymentDate.Valid {
			paid = row.PaymentDate.Time.In(time.Local).Format(core.DateLayout)
		}
		record := []string{row.StudentName, row.LocationName, row.Period.String(), string(row.Status), amount, paid}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
