package fee

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

var (
	// errors
	ErrNotFound = core.NewNotFoundError("fee")
)

type (
	Repository interface {
		// UpsertPayment creates the fee for (f.StudentID, f.Period), or overwrites its status, amount and
		// payment date, in one atomic statement.
		UpsertPayment(ctx context.Context, f Fee) (Fee, error)
		GetFee(ctx context.Context, studentID string, period Period) (Fee, error)
		// QueryPeriodRows returns one row per student, ordered by name, joined to its fee for period.
		QueryPeriodRows(ctx context.Context, period Period) ([]Row, error)
		// QueryStudentFees returns the student's fees, newest first.
		QueryStudentFees(ctx context.Context, studentID string) ([]Fee, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate cleans np and checks its fields.
func (np *NewPayment) Validate(v *validator.Validate) error {
	np.Clean()
	if err := v.Struct(np); err != nil {
		return err
	}
	if np.Amount.IsNegative() {
		return errInvalidAmount
	}
	return nil
}

// GetStatus returns the student's fee status for period, UNPAID when nothing was recorded.
func (svc *Service) GetStatus(ctx context.Context, studentID string, period Period) (FeeStatus, error) {
	f, err := svc.repo.GetFee(ctx, studentID, period)
	if err != nil {
		if core.IsNotFound(err) {
			return UnpaidStatus(period), nil
		}
		return FeeStatus{}, errors.Wrap(err, "getting fee")
	}
	return StatusOf(f), nil
}

// RecordPayment marks the student's fee for period as PAID with amount, paid now.
// A blank period means the current one. Paying a period again overwrites the previous amount and date.
func (svc *Service) RecordPayment(ctx context.Context, studentID string, amount decimal.Decimal, period Period) (Fee, error) {
	if amount.IsNegative() {
		return Fee{}, errInvalidAmount
	}
	if period == "" {
		period = CurrentPeriod()
	} else if _, err := ParsePeriod(string(period)); err != nil {
		return Fee{}, err
	}

	now := nowFunc()
	f := Fee{
		StudentID:   studentID,
		Period:      period,
		Status:      Paid,
		Amount:      amount,
		PaymentDate: null.TimeFrom(now.UTC()),
		CreatedAt:   now.UTC(),
	}
	return svc.repo.UpsertPayment(ctx, f)
}

// RecordFrom records a validated NewPayment.
func (svc *Service) RecordFrom(ctx context.Context, np NewPayment) (Fee, error) {
	return svc.RecordPayment(ctx, np.StudentID, np.Amount, Period(np.Period))
}

// ListForPeriod returns every student's fee status for period, optionally keeping only `status`.
func (svc *Service) ListForPeriod(ctx context.Context, period Period, status Status) ([]Row, error) {
	rows, err := svc.repo.QueryPeriodRows(ctx, period)
	if err != nil {
		return nil, errors.Wrap(err, "querying fees")
	}
	if status == "" {
		return rows, nil
	}
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Status == status {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// History returns the student's fee records, newest first.
func (svc *Service) History(ctx context.Context, studentID string) ([]Fee, error) {
	return svc.repo.QueryStudentFees(ctx, core.CleanString(studentID))
}
