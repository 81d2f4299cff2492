package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/fee"
	"github.com/kalashala/kalashala/core/student"
)

type feeRepository struct {
	store
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *sqlx.DB, logger core.Logger) fee.Repository {
	return &feeRepository{store{db: db, logger: logger}}
}

type feeRow struct {
	ID          string          `db:"id"`
	StudentID   string          `db:"student_id"`
	Period      string          `db:"period"`
	Status      string          `db:"status"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate null.Time       `db:"payment_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (row feeRow) fee() fee.Fee {
	return fee.Fee{
		ID:          row.ID,
		StudentID:   row.StudentID,
		Period:      fee.Period(row.Period),
		Status:      fee.Status(row.Status),
		Amount:      row.Amount,
		PaymentDate: row.PaymentDate,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

type periodRow struct {
	StudentID    string              `db:"student_id"`
	StudentName  string              `db:"student_name"`
	LocationName string              `db:"location_name"`
	FeeID        null.String         `db:"fee_id"`
	Status       null.String         `db:"status"`
	Amount       decimal.NullDecimal `db:"amount"`
	PaymentDate  null.Time           `db:"payment_date"`
}

const selectFee = `SELECT id, student_id, period, status, amount, payment_date, created_at FROM fee`

func (repo *feeRepository) UpsertPayment(ctx context.Context, f fee.Fee) (fee.Fee, error) {
	var row feeRow
	err := repo.db.GetContext(ctx, &row, `
		INSERT INTO fee (id, student_id, period, status, amount, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, period) DO UPDATE
		SET status = EXCLUDED.status, amount = EXCLUDED.amount, payment_date = EXCLUDED.payment_date
		RETURNING id, student_id, period, status, amount, payment_date, created_at`,
		uuid.New().String(), f.StudentID, string(f.Period), string(f.Status), f.Amount, f.PaymentDate, f.CreatedAt,
	)
	if err != nil {
		return fee.Fee{}, repo.trap(err, "recording payment", student.ErrNotFound)
	}
	return row.fee(), nil
}

func (repo *feeRepository) GetFee(ctx context.Context, studentID string, period fee.Period) (fee.Fee, error) {
	var row feeRow
	err := repo.db.GetContext(ctx, &row, selectFee+` WHERE student_id = $1 AND period = $2`, studentID, string(period))
	if err != nil {
		return fee.Fee{}, repo.trap(err, "getting fee", fee.ErrNotFound)
	}
	return row.fee(), nil
}

func (repo *feeRepository) QueryPeriodRows(ctx context.Context, period fee.Period) ([]fee.Row, error) {
	var rows []periodRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT s.id AS student_id, s.name AS student_name, l.name AS location_name,
			f.id AS fee_id, f.status, f.amount, f.payment_date
		FROM student s
		JOIN location l ON l.id = s.location_id
		LEFT JOIN fee f ON f.student_id = s.id AND f.period = $1
		ORDER BY s.name COLLATE "C", s.id`,
		string(period),
	)
	if err != nil {
		return nil, repo.trap(err, "querying fees", nil)
	}

	out := make([]fee.Row, 0, len(rows))
	for _, row := range rows {
		st := fee.UnpaidStatus(period)
		if row.FeeID.Valid {
			st = fee.FeeStatus{
				FeeID:       row.FeeID,
				Period:      period,
				Status:      fee.Status(row.Status.String),
				Amount:      row.Amount,
				PaymentDate: row.PaymentDate,
			}
		}
		out = append(out, fee.Row{
			StudentID:    row.StudentID,
			StudentName:  row.StudentName,
			LocationName: row.LocationName,
			FeeStatus:    st,
		})
	}
	return out, nil
}

func (repo *feeRepository) QueryStudentFees(ctx context.Context, studentID string) ([]fee.Fee, error) {
	var rows []feeRow
	err := repo.db.SelectContext(ctx, &rows, selectFee+` WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, repo.trap(err, "querying student fees", student.ErrNotFound)
	}
	fees := make([]fee.Fee, 0, len(rows))
	for _, row := range rows {
		fees = append(fees, row.fee())
	}
	return fees, nil
}
