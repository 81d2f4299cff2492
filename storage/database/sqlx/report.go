package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/report"
	"github.com/kalashala/kalashala/storage/database"
)

type reportRepository struct {
	store
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *sqlx.DB, logger core.Logger) report.Repository {
	return &reportRepository{store{db: db, logger: logger}}
}

type reportRow struct {
	Date         time.Time `db:"date"`
	StudentName  string    `db:"student_name"`
	Status       string    `db:"status"`
	ClassName    string    `db:"class_name"`
	LocationName string    `db:"location_name"`
}

func (repo *reportRepository) QueryRows(ctx context.Context, r calendar.Range, classID string) ([]report.Row, error) {
	q := `
		SELECT a.date, s.name AS student_name, a.status, c.name AS class_name, l.name AS location_name
		FROM attendance a
		JOIN student s ON s.id = a.student_id
		JOIN location l ON l.id = s.location_id
		JOIN class c ON c.id = a.class_id
		WHERE a.date >= $1::timestamp AND a.date <= $2::timestamp`
	args := []interface{}{database.WallClock(r.Start), database.WallClock(r.End)}
	if classID != "" {
		q += ` AND a.class_id = $3`
		args = append(args, classID)
	}
	q += ` ORDER BY a.date DESC, s.name COLLATE "C", c.name`

	var rows []reportRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, repo.trap(err, "querying report", nil)
	}

	out := make([]report.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.Row{
			Date:         database.LocalDay(row.Date),
			StudentName:  row.StudentName,
			Status:       row.Status,
			ClassName:    row.ClassName,
			LocationName: row.LocationName,
		})
	}
	return out, nil
}
