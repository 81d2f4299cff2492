package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kalashala/kalashala/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) UpsertAttendance(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.student[a.StudentID]; !ok {
		return attendance.Attendance{}, attendance.ErrStudentOrClassNotFound
	}
	if _, ok := repo.db.class[a.ClassID]; !ok {
		return attendance.Attendance{}, attendance.ErrStudentOrClassNotFound
	}

	key := attendanceKey{date: a.Date.UnixNano(), studentID: a.StudentID, classID: a.ClassID}
	if rec, ok := repo.db.attendance[key]; ok {
		rec.status = string(a.Status)
		a.ID = rec.id
		return a, nil
	}
	a.ID = uuid.New().String()
	repo.db.attendance[key] = &attendanceRecord{id: a.ID, date: a.Date, status: string(a.Status)}
	return a, nil
}

func (repo *attendanceRepository) QueryRoster(_ context.Context, day time.Time, classID, locationID string) ([]attendance.RosterEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := []attendance.RosterEntry{}
	for _, s := range repo.db.student {
		if s.LocationID != locationID {
			continue
		}
		if _, enrolled := repo.db.enrollment[enrollmentKey{studentID: s.ID, classID: classID}]; !enrolled {
			continue
		}

		entry := attendance.RosterEntry{StudentID: s.ID, StudentName: s.Name}
		key := attendanceKey{date: day.UnixNano(), studentID: s.ID, classID: classID}
		if rec, ok := repo.db.attendance[key]; ok {
			entry.Mark = &attendance.Attendance{
				ID:        rec.id,
				StudentID: s.ID,
				ClassID:   classID,
				Date:      rec.date,
				Status:    attendance.Status(rec.status),
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StudentName != entries[j].StudentName {
			return entries[i].StudentName < entries[j].StudentName
		}
		return entries[i].StudentID < entries[j].StudentID
	})
	return entries, nil
}

func (repo *attendanceRepository) QueryStudentHistory(_ context.Context, studentID string, limit int) ([]attendance.HistoryEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := []attendance.HistoryEntry{}
	for key, rec := range repo.db.attendance {
		if key.studentID != studentID {
			continue
		}
		entries = append(entries, attendance.HistoryEntry{
			Date:      rec.date,
			ClassID:   key.classID,
			ClassName: repo.db.class[key.classID].Name,
			Status:    attendance.Status(rec.status),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ClassName < entries[j].ClassName
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
