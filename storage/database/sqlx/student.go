package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/core/student"
	"github.com/kalashala/kalashala/storage/database"
)

type studentRepository struct {
	store
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB, logger core.Logger) student.Repository {
	return &studentRepository{store{db: db, logger: logger}}
}

type studentRow struct {
	ID            string      `db:"id"`
	Name          string      `db:"name"`
	Phone         null.String `db:"phone"`
	ParentName    null.String `db:"parent_name"`
	LocationID    string      `db:"location_id"`
	LocationName  string      `db:"location_name"`
	AdmissionDate time.Time   `db:"admission_date"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (row studentRow) student() student.Student {
	return student.Student{
		ID:            row.ID,
		Name:          row.Name,
		Phone:         row.Phone,
		ParentName:    row.ParentName,
		LocationID:    row.LocationID,
		AdmissionDate: database.LocalDay(row.AdmissionDate),
		CreatedAt:     row.CreatedAt.UTC(),
		ClassIDs:      []string{},
	}
}

type enrolledClassRow struct {
	StudentID string `db:"student_id"`
	ID        string `db:"id"`
	Name      string `db:"name"`
}

const selectStudent = `
	SELECT s.id, s.name, s.phone, s.parent_name, s.location_id, l.name AS location_name, s.admission_date, s.created_at
	FROM student s JOIN location l ON l.id = s.location_id`

func insertEnrollments(ctx context.Context, tx *sqlx.Tx, studentID string, classIDs []string) error {
	for _, classID := range classIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO enrollment (id, student_id, class_id) VALUES ($1, $2, $3)`,
			uuid.New().String(), studentID, classID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	s.ID = uuid.New().String()
	s.ClassIDs = core.UniqueStrings(s.ClassIDs)

	err := database.WithTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO student (id, name, phone, parent_name, location_id, admission_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6::timestamp, $7)`,
			s.ID, s.Name, s.Phone, s.ParentName, s.LocationID, database.WallClock(s.AdmissionDate), s.CreatedAt,
		); err != nil {
			return err
		}
		return insertEnrollments(ctx, tx, s.ID, s.ClassIDs)
	})
	if err != nil {
		return student.Student{}, repo.trap(err, "creating student", school.ErrLocationNotFound)
	}
	return s, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Diff, error) {
	var diff student.Diff
	err := database.WithTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE student SET name = $2, phone = $3, parent_name = $4, location_id = $5, admission_date = $6::timestamp
			WHERE id = $1`,
			s.ID, s.Name, s.Phone, s.ParentName, s.LocationID, database.WallClock(s.AdmissionDate),
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return student.ErrNotFound
		}

		var current []string
		if err = tx.SelectContext(ctx, &current,
			`SELECT class_id FROM enrollment WHERE student_id = $1 FOR UPDATE`, s.ID,
		); err != nil {
			return err
		}

		diff = student.Reconcile(current, s.ClassIDs)
		if len(diff.Removed) > 0 {
			if _, err = tx.ExecContext(ctx,
				`DELETE FROM enrollment WHERE student_id = $1 AND class_id = ANY($2::uuid[])`,
				s.ID, pq.Array(diff.Removed),
			); err != nil {
				return err
			}
		}
		return insertEnrollments(ctx, tx, s.ID, diff.Added)
	})
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return student.Diff{}, student.ErrNotFound
		}
		return student.Diff{}, repo.trap(err, "updating student", school.ErrLocationNotFound)
	}
	return diff, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	// enrollments, attendance marks and fees are removed by ON DELETE CASCADE
	res, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return repo.trap(err, "deleting student", student.ErrNotFound)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return repo.trap(err, "deleting student", student.ErrNotFound)
	}
	if n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) getRow(ctx context.Context, id string) (studentRow, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, selectStudent+` WHERE s.id = $1`, id); err != nil {
		return studentRow{}, repo.trap(err, "getting student", student.ErrNotFound)
	}
	return row, nil
}

func (repo *studentRepository) enrolledClasses(ctx context.Context, ids []string) (map[string][]school.Class, error) {
	var rows []enrolledClassRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT e.student_id, c.id, c.name
		FROM enrollment e JOIN class c ON c.id = e.class_id
		WHERE e.student_id = ANY($1::uuid[])
		ORDER BY c.name`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, repo.trap(err, "querying enrollments", nil)
	}
	classes := make(map[string][]school.Class, len(ids))
	for _, row := range rows {
		classes[row.StudentID] = append(classes[row.StudentID], school.Class{ID: row.ID, Name: row.Name})
	}
	return classes, nil
}

func listing(row studentRow, classes []school.Class) student.Listing {
	l := student.Listing{
		Student:  row.student(),
		Location: school.Location{ID: row.LocationID, Name: row.LocationName},
		Classes:  []school.Class{},
	}
	for _, cls := range classes {
		l.ClassIDs = append(l.ClassIDs, cls.ID)
		l.Classes = append(l.Classes, cls)
	}
	return l
}

func (repo *studentRepository) GetStudent(ctx context.Context, id string) (student.Student, error) {
	l, err := repo.GetListing(ctx, id)
	if err != nil {
		return student.Student{}, err
	}
	return l.Student, nil
}

func (repo *studentRepository) GetListing(ctx context.Context, id string) (student.Listing, error) {
	row, err := repo.getRow(ctx, id)
	if err != nil {
		return student.Listing{}, err
	}
	classes, err := repo.enrolledClasses(ctx, []string{row.ID})
	if err != nil {
		return student.Listing{}, err
	}
	return listing(row, classes[row.ID]), nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, ordering []core.DBOrdering) ([]student.Listing, error) {
	q := selectStudent
	var args []interface{}
	if filter != nil && filter.Search != "" {
		q += ` WHERE s.name ILIKE $1 OR l.name ILIKE $1`
		args = append(args, containsPattern(filter.Search))
	}
	if clause := orderBy(ordering, "s", student.OrderingFields...); clause != "" {
		q += clause + ", s.id"
	} else {
		q += ` ORDER BY s.created_at DESC, s.id`
	}

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, repo.trap(err, "querying students", nil)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	classes, err := repo.enrolledClasses(ctx, ids)
	if err != nil {
		return nil, err
	}

	students := make([]student.Listing, 0, len(rows))
	for _, row := range rows {
		students = append(students, listing(row, classes[row.ID]))
	}
	return students, nil
}
