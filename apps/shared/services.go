package shared

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/attendance"
	"github.com/kalashala/kalashala/core/fee"
	"github.com/kalashala/kalashala/core/report"
	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/core/student"
	"github.com/kalashala/kalashala/storage/database"
	dummydb "github.com/kalashala/kalashala/storage/database/dummy"
	sqlxrepos "github.com/kalashala/kalashala/storage/database/sqlx"
)

// Services holds the domain services wired to the configured database engine.
type Services struct {
	DB *sqlx.DB // nil with the memory engine

	Schools    *school.Service
	Students   *student.Service
	Attendance *attendance.Service
	Fees       *fee.Service
	Reports    *report.Service
}

type repositories struct {
	schools    school.Repository
	students   student.Repository
	attendance attendance.Repository
	fees       fee.Repository
	reports    report.Repository
}

// NewServices opens the configured database and wires the services to it.
// With postgres, the database is created if needed and, when migrate is set, migrated up.
func NewServices(conf *core.Config, dbLogger core.Logger, migrate bool) (*Services, error) {
	var svcs Services
	var repos repositories

	if conf.Database.InMemory() {
		db, err := dummydb.Open()
		if err != nil {
			return nil, errors.Wrap(err, "opening in-memory database")
		}
		repos = repositories{
			schools:    dummydb.NewSchoolRepository(db),
			students:   dummydb.NewStudentRepository(db),
			attendance: dummydb.NewAttendanceRepository(db),
			fees:       dummydb.NewFeeRepository(db),
			reports:    dummydb.NewReportRepository(db),
		}
	} else {
		db, err := setUpDB(conf, migrate)
		if err != nil {
			return nil, err
		}
		svcs.DB = db
		repos = repositories{
			schools:    sqlxrepos.NewSchoolRepository(db, dbLogger),
			students:   sqlxrepos.NewStudentRepository(db, dbLogger),
			attendance: sqlxrepos.NewAttendanceRepository(db, dbLogger),
			fees:       sqlxrepos.NewFeeRepository(db, dbLogger),
			reports:    sqlxrepos.NewReportRepository(db, dbLogger),
		}
	}

	svcs.Schools = school.NewService(repos.schools)
	svcs.Students = student.NewService(repos.students)
	svcs.Attendance = attendance.NewService(repos.attendance, svcs.Schools)
	svcs.Fees = fee.NewService(repos.fees)
	svcs.Reports = report.NewService(repos.reports)
	return &svcs, nil
}

// Close closes the database, if any.
func (svcs *Services) Close() error {
	if svcs.DB == nil {
		return nil
	}
	return svcs.DB.Close()
}

func setUpDB(conf *core.Config, migrate bool) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, errors.Wrap(err, "creating database")
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err = database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
