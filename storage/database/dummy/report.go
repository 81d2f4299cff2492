package dummydb

import (
	"context"
	"sort"

	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/report"
)

type reportRepository struct {
	db *DB
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) QueryRows(_ context.Context, r calendar.Range, classID string) ([]report.Row, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := []report.Row{}
	for key, rec := range repo.db.attendance {
		if !r.Contains(rec.date) || (classID != "" && key.classID != classID) {
			continue
		}
		s := repo.db.student[key.studentID]
		rows = append(rows, report.Row{
			Date:         rec.date,
			StudentName:  s.Name,
			Status:       rec.status,
			ClassName:    repo.db.class[key.classID].Name,
			LocationName: repo.db.location[s.LocationID].Name,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		if rows[i].StudentName != rows[j].StudentName {
			return rows[i].StudentName < rows[j].StudentName
		}
		return rows[i].ClassName < rows[j].ClassName
	})
	return rows, nil
}
