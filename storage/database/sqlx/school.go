package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/storage/database"
)

type schoolRepository struct {
	store
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *sqlx.DB, logger core.Logger) school.Repository {
	return &schoolRepository{store{db: db, logger: logger}}
}

type locationCountRow struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Count int    `db:"count"`
}

func (repo *schoolRepository) QueryLocations(ctx context.Context) ([]school.Location, error) {
	locs := []school.Location{}
	err := repo.db.SelectContext(ctx, &locs, `SELECT id, name FROM location ORDER BY name`)
	return locs, repo.trap(err, "querying locations", nil)
}

func (repo *schoolRepository) QueryClasses(ctx context.Context) ([]school.Class, error) {
	classes := []school.Class{}
	err := repo.db.SelectContext(ctx, &classes, `SELECT id, name FROM class ORDER BY name`)
	return classes, repo.trap(err, "querying classes", nil)
}

func (repo *schoolRepository) GetLocationByID(ctx context.Context, id string) (school.Location, error) {
	var loc school.Location
	err := repo.db.GetContext(ctx, &loc, `SELECT id, name FROM location WHERE id = $1`, id)
	if err != nil {
		return school.Location{}, repo.trap(err, "getting location", school.ErrLocationNotFound)
	}
	return loc, nil
}

func (repo *schoolRepository) GetClassByID(ctx context.Context, id string) (school.Class, error) {
	var cls school.Class
	err := repo.db.GetContext(ctx, &cls, `SELECT id, name FROM class WHERE id = $1`, id)
	if err != nil {
		return school.Class{}, repo.trap(err, "getting class", school.ErrClassNotFound)
	}
	return cls, nil
}

func (repo *schoolRepository) UpsertLocationByName(ctx context.Context, loc school.Location) (school.Location, error) {
	err := repo.db.GetContext(ctx, &loc, `
		INSERT INTO location (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`,
		uuid.New().String(), loc.Name,
	)
	if err != nil {
		return school.Location{}, repo.trap(err, "upserting location", school.ErrLocationNotFound)
	}
	return loc, nil
}

func (repo *schoolRepository) UpsertClassByName(ctx context.Context, cls school.Class) (school.Class, error) {
	err := repo.db.GetContext(ctx, &cls, `
		INSERT INTO class (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`,
		uuid.New().String(), cls.Name,
	)
	if err != nil {
		return school.Class{}, repo.trap(err, "upserting class", school.ErrClassNotFound)
	}
	return cls, nil
}

func (repo *schoolRepository) GetStats(ctx context.Context, since time.Time) (school.Stats, error) {
	stats := school.Stats{Locations: []school.LocationCount{}, Classes: []school.ClassCount{}}

	if err := repo.db.GetContext(ctx, &stats.TotalStudents, `SELECT count(*) FROM student`); err != nil {
		return school.Stats{}, repo.trap(err, "counting students", nil)
	}

	var locs []locationCountRow
	err := repo.db.SelectContext(ctx, &locs, `
		SELECT l.id, l.name, count(s.id) AS count
		FROM location l LEFT JOIN student s ON s.location_id = l.id
		GROUP BY l.id, l.name
		ORDER BY l.name`,
	)
	if err != nil {
		return school.Stats{}, repo.trap(err, "counting students per location", nil)
	}
	for _, row := range locs {
		stats.Locations = append(stats.Locations, school.LocationCount{
			Location:     school.Location{ID: row.ID, Name: row.Name},
			StudentCount: row.Count,
		})
	}

	var classes []locationCountRow
	err = repo.db.SelectContext(ctx, &classes, `
		SELECT c.id, c.name, count(e.id) AS count
		FROM class c LEFT JOIN enrollment e ON e.class_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`,
	)
	if err != nil {
		return school.Stats{}, repo.trap(err, "counting enrollments per class", nil)
	}
	for _, row := range classes {
		stats.Classes = append(stats.Classes, school.ClassCount{
			Class:           school.Class{ID: row.ID, Name: row.Name},
			EnrollmentCount: row.Count,
		})
	}

	err = repo.db.GetContext(ctx, &stats.PresentToday,
		`SELECT count(*) FROM attendance WHERE status = 'PRESENT' AND date >= $1::timestamp`,
		database.WallClock(since),
	)
	if err != nil {
		return school.Stats{}, repo.trap(err, "counting present marks", nil)
	}
	return stats, nil
}
