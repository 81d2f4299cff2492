package fee

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core"
)

type Status string

const (
	Paid   Status = "PAID"
	Unpaid Status = "UNPAID"
)

// Period is a billing month token formatted as YYYY-MM.
type Period string

// PeriodOf returns the billing period t falls in, in local time.
func PeriodOf(t time.Time) Period {
	return Period(t.In(time.Local).Format(core.PeriodLayout))
}

// CurrentPeriod returns the billing period of the current time.
func CurrentPeriod() Period {
	return PeriodOf(nowFunc())
}

func ParsePeriod(s string) (Period, error) {
	s = core.CleanString(s)
	t, err := time.ParseInLocation(core.PeriodLayout, s, time.Local)
	if err != nil || t.Format(core.PeriodLayout) != s {
		return "", core.NewValidationError(nil, core.FieldError{Field: "period", Error: "period must be a month formatted as YYYY-MM"})
	}
	return Period(s), nil
}

func (p Period) String() string { return string(p) }

// Fee is the payment record of a student for a billing period. There is at most one per (StudentID, Period).
type Fee struct {
	ID          string          `json:"id"`
	StudentID   string          `json:"student_id"`
	Period      Period          `json:"period"`
	Status      Status          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate null.Time       `json:"payment_date"`
	CreatedAt   time.Time       `json:"created_at"` // UTC
}

// FeeStatus is a student's fee state for a period. Without a Fee record it is UNPAID with null fields.
type FeeStatus struct {
	FeeID       null.String         `json:"fee_id"`
	Period      Period              `json:"period"`
	Status      Status              `json:"status"`
	Amount      decimal.NullDecimal `json:"amount"`
	PaymentDate null.Time           `json:"payment_date"`
}

// StatusOf returns the status a Fee record stands for.
func StatusOf(f Fee) FeeStatus {
	return FeeStatus{
		FeeID:       null.StringFrom(f.ID),
		Period:      f.Period,
		Status:      f.Status,
		Amount:      decimal.NewNullDecimal(f.Amount),
		PaymentDate: f.PaymentDate,
	}
}

// UnpaidStatus is the status of a period without a Fee record.
func UnpaidStatus(period Period) FeeStatus {
	return FeeStatus{Period: period, Status: Unpaid}
}

// Row is a line of the fee dashboard.
type Row struct {
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	LocationName string `json:"location_name"`
	FeeStatus
}

// NewPayment is the input of a payment. Period defaults to the current one.
type NewPayment struct {
	StudentID string          `json:"student_id" validate:"notblank"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period" validate:"omitempty,period"`
}

func (np *NewPayment) Clean() {
	np.StudentID = core.CleanString(np.StudentID)
	np.Period = core.CleanString(np.Period)
}

var errInvalidAmount = core.NewValidationError(nil, core.FieldError{Field: "amount", Error: "amount must be a finite non-negative number"})

// AmountFromFloat converts f to a payment amount, rejecting NaN, infinities and negative values.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Decimal{}, errInvalidAmount
	}
	return decimal.NewFromFloat(f), nil
}

// ParseAmount parses a decimal payment amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(core.CleanString(s))
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, errInvalidAmount
	}
	return amount, nil
}

// ParseStatusFilter accepts "", "ALL", PAID or UNPAID. A blank result means no filtering.
func ParseStatusFilter(s string) (Status, error) {
	switch st := Status(core.CleanString(s, true /* lower */)); st {
	case "", "all":
		return "", nil
	case "paid":
		return Paid, nil
	case "unpaid":
		return Unpaid, nil
	}
	return "", core.NewValidationError(nil, core.FieldError{Field: "status", Error: "status must be one of ALL PAID UNPAID"})
}
