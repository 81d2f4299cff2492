package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/attendance"
	"github.com/kalashala/kalashala/storage/database"
)

type attendanceRepository struct {
	store
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB, logger core.Logger) attendance.Repository {
	return &attendanceRepository{store{db: db, logger: logger}}
}

type rosterRow struct {
	StudentID   string      `db:"student_id"`
	StudentName string      `db:"student_name"`
	MarkID      null.String `db:"mark_id"`
	MarkStatus  null.String `db:"mark_status"`
}

type historyRow struct {
	Date      time.Time `db:"date"`
	ClassID   string    `db:"class_id"`
	ClassName string    `db:"class_name"`
	Status    string    `db:"status"`
}

func (repo *attendanceRepository) UpsertAttendance(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	err := repo.db.GetContext(ctx, &a.ID, `
		INSERT INTO attendance (id, date, student_id, class_id, status) VALUES ($1, $2::timestamp, $3, $4, $5)
		ON CONFLICT (date, student_id, class_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING id`,
		uuid.New().String(), database.WallClock(a.Date), a.StudentID, a.ClassID, string(a.Status),
	)
	if err != nil {
		return attendance.Attendance{}, repo.trap(err, "marking attendance", attendance.ErrStudentOrClassNotFound)
	}
	return a, nil
}

func (repo *attendanceRepository) QueryRoster(ctx context.Context, day time.Time, classID, locationID string) ([]attendance.RosterEntry, error) {
	var rows []rosterRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT s.id AS student_id, s.name AS student_name, a.id AS mark_id, a.status AS mark_status
		FROM student s
		JOIN enrollment e ON e.student_id = s.id AND e.class_id = $2
		LEFT JOIN attendance a ON a.student_id = s.id AND a.class_id = $2 AND a.date = $1::timestamp
		WHERE s.location_id = $3
		ORDER BY s.name COLLATE "C", s.id`,
		database.WallClock(day), classID, locationID,
	)
	if err != nil {
		return nil, repo.trap(err, "querying roster", nil)
	}

	entries := make([]attendance.RosterEntry, 0, len(rows))
	for _, row := range rows {
		entry := attendance.RosterEntry{StudentID: row.StudentID, StudentName: row.StudentName}
		if row.MarkID.Valid {
			entry.Mark = &attendance.Attendance{
				ID:        row.MarkID.String,
				StudentID: row.StudentID,
				ClassID:   classID,
				Date:      day,
				Status:    attendance.Status(row.MarkStatus.String),
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (repo *attendanceRepository) QueryStudentHistory(ctx context.Context, studentID string, limit int) ([]attendance.HistoryEntry, error) {
	var rows []historyRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT a.date, a.class_id, c.name AS class_name, a.status
		FROM attendance a JOIN class c ON c.id = a.class_id
		WHERE a.student_id = $1
		ORDER BY a.date DESC, c.name
		LIMIT $2`,
		studentID, limit,
	)
	if err != nil {
		return nil, repo.trap(err, "querying attendance history", nil)
	}

	entries := make([]attendance.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, attendance.HistoryEntry{
			Date:      database.LocalDay(row.Date),
			ClassID:   row.ClassID,
			ClassName: row.ClassName,
			Status:    attendance.Status(row.Status),
		})
	}
	return entries, nil
}
