package report

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/calendar"
)

// AllClasses disables the class filter.
const AllClasses = "ALL"

// nowFunc is swapped in tests.
var nowFunc = time.Now

// Row is a flat attendance line, ready for export.
type Row struct {
	Date         time.Time `json:"date"`
	StudentName  string    `json:"student_name"`
	Status       string    `json:"status"`
	ClassName    string    `json:"class_name"`
	LocationName string    `json:"location_name"`
}

// Query holds the report filters. Year is only used by month periods; 0 means the current year.
type Query struct {
	Period  string `query:"period"`
	ClassID string `query:"class_id"`
	Year    int    `query:"year"`
}

// Clean trims q; a blank period is weekly and a blank class is AllClasses.
func (q *Query) Clean() {
	q.Period = core.CleanString(q.Period)
	if q.Period == "" {
		q.Period = calendar.Weekly
	}
	q.ClassID = core.CleanString(q.ClassID)
	if q.ClassID == "" {
		q.ClassID = AllClasses
	}
}

type (
	Repository interface {
		// QueryRows returns the attendance marks dated within r (inclusive), newest first,
		// limited to classID unless it is blank.
		QueryRows(ctx context.Context, r calendar.Range, classID string) ([]Row, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Build resolves periodSpec and returns the matching attendance rows, newest first.
// classID may be AllClasses. No match gives an empty report, not an error.
func (svc *Service) Build(ctx context.Context, periodSpec, classID string, year int) ([]Row, error) {
	r, err := calendar.ResolvePeriod(periodSpec, nowFunc(), year)
	if err != nil {
		return nil, err
	}
	if classID = core.CleanString(classID); classID == AllClasses {
		classID = ""
	}
	if r.Empty() {
		return []Row{}, nil
	}

	rows, err := svc.repo.QueryRows(ctx, r, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying report rows")
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// FileName is the export file name for periodSpec, dated `now`.
func FileName(periodSpec string, now time.Time) string {
	return "attendance_report_" + calendar.PeriodLabel(periodSpec) + "_" + now.In(time.Local).Format(core.DateLayout) + ".csv"
}
