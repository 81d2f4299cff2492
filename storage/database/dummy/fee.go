package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/kalashala/kalashala/core/fee"
	"github.com/kalashala/kalashala/core/student"
)

type feeRepository struct {
	db *DB
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *DB) fee.Repository {
	return &feeRepository{db: db}
}

func (rec *feeRecord) fee(key feeKey) fee.Fee {
	return fee.Fee{
		ID:          rec.id,
		StudentID:   key.studentID,
		Period:      fee.Period(key.period),
		Status:      fee.Status(rec.status),
		Amount:      rec.amount,
		PaymentDate: rec.paymentDate,
		CreatedAt:   rec.createdAt,
	}
}

func (repo *feeRepository) UpsertPayment(_ context.Context, f fee.Fee) (fee.Fee, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.student[f.StudentID]; !ok {
		return fee.Fee{}, student.ErrNotFound
	}

	key := feeKey{studentID: f.StudentID, period: string(f.Period)}
	rec, ok := repo.db.fee[key]
	if !ok {
		rec = &feeRecord{id: uuid.New().String(), createdAt: f.CreatedAt}
		repo.db.fee[key] = rec
	}
	rec.status = string(f.Status)
	rec.amount = f.Amount
	rec.paymentDate = f.PaymentDate
	return rec.fee(key), nil
}

func (repo *feeRepository) GetFee(_ context.Context, studentID string, period fee.Period) (fee.Fee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	key := feeKey{studentID: studentID, period: string(period)}
	if rec, ok := repo.db.fee[key]; ok {
		return rec.fee(key), nil
	}
	return fee.Fee{}, fee.ErrNotFound
}

func (repo *feeRepository) QueryPeriodRows(_ context.Context, period fee.Period) ([]fee.Row, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]fee.Row, 0, len(repo.db.student))
	for _, s := range repo.db.student {
		row := fee.Row{
			StudentID:    s.ID,
			StudentName:  s.Name,
			LocationName: repo.db.location[s.LocationID].Name,
			FeeStatus:    fee.UnpaidStatus(period),
		}
		key := feeKey{studentID: s.ID, period: string(period)}
		if rec, ok := repo.db.fee[key]; ok {
			row.FeeStatus = fee.StatusOf(rec.fee(key))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StudentName != rows[j].StudentName {
			return rows[i].StudentName < rows[j].StudentName
		}
		return rows[i].StudentID < rows[j].StudentID
	})
	return rows, nil
}

func (repo *feeRepository) QueryStudentFees(_ context.Context, studentID string) ([]fee.Fee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	fees := []fee.Fee{}
	for key, rec := range repo.db.fee {
		if key.studentID == studentID {
			fees = append(fees, rec.fee(key))
		}
	}
	sort.Slice(fees, func(i, j int) bool {
		if !fees[i].CreatedAt.Equal(fees[j].CreatedAt) {
			return fees[i].CreatedAt.After(fees[j].CreatedAt)
		}
		return fees[i].Period > fees[j].Period
	})
	return fees, nil
}
