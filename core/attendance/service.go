package attendance

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/school"
)

// HistoryLimit is the number of marks shown on a student's page.
const HistoryLimit = 50

type (
	Repository interface {
		// UpsertAttendance inserts the mark or overwrites the status of the existing one for
		// (a.Date, a.StudentID, a.ClassID) in one atomic statement. a.Date must be a start of day.
		UpsertAttendance(ctx context.Context, a Attendance) (Attendance, error)
		// QueryRoster returns the students enrolled in classID and located at locationID, ordered by name,
		// each with its mark for (day, classID) if any.
		QueryRoster(ctx context.Context, day time.Time, classID, locationID string) ([]RosterEntry, error)
		// QueryStudentHistory returns the student's latest marks, newest first.
		QueryStudentHistory(ctx context.Context, studentID string, limit int) ([]HistoryEntry, error)
	}

	Service struct {
		repo    Repository
		schools *school.Service
	}
)

func NewService(repo Repository, schools *school.Service) *Service {
	return &Service{repo: repo, schools: schools}
}

// Validate cleans m and checks its fields.
func (m *MarkAttendance) Validate(v *validator.Validate) error {
	m.Clean()
	return v.Struct(m)
}

// Mark records a PRESENT/ABSENT mark for the student in the class on the day of rawDate.
// Marking the same student, class and day again overwrites the status.
func (svc *Service) Mark(ctx context.Context, studentID, classID string, rawDate time.Time, status Status) (Attendance, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return Attendance{}, err
	}
	a := Attendance{
		StudentID: studentID,
		ClassID:   classID,
		Date:      calendar.NormalizeDay(rawDate),
		Status:    status,
	}
	return svc.repo.UpsertAttendance(ctx, a)
}

// MarkFrom records a validated MarkAttendance.
func (svc *Service) MarkFrom(ctx context.Context, m MarkAttendance) (Attendance, error) {
	day, err := calendar.ParseDay(m.Date)
	if err != nil {
		return Attendance{}, err
	}
	return svc.Mark(ctx, m.StudentID, m.ClassID, day, Status(m.Status))
}

// Roster returns the class roster at the location for the day, ordered by student name.
func (svc *Service) Roster(ctx context.Context, params RosterParams) ([]RosterEntry, error) {
	if _, err := svc.schools.GetClass(ctx, params.ClassID); err != nil {
		return nil, err
	}
	if _, err := svc.schools.GetLocation(ctx, params.LocationID); err != nil {
		return nil, err
	}
	entries, err := svc.repo.QueryRoster(ctx, calendar.NormalizeDay(params.Date), params.ClassID, params.LocationID)
	if err != nil {
		return nil, errors.Wrap(err, "querying roster")
	}
	return entries, nil
}

// ResolveParams resolves q against today and the first class and location.
func (svc *Service) ResolveParams(ctx context.Context, q RosterQuery) (RosterParams, error) {
	classes, err := svc.schools.ListClasses(ctx)
	if err != nil {
		return RosterParams{}, errors.Wrap(err, "listing classes")
	}
	locations, err := svc.schools.ListLocations(ctx)
	if err != nil {
		return RosterParams{}, errors.Wrap(err, "listing locations")
	}
	return ResolveRosterParams(q, calendar.Today(), classes, locations)
}

// History returns the student's last HistoryLimit marks.
func (svc *Service) History(ctx context.Context, studentID string) ([]HistoryEntry, error) {
	return svc.repo.QueryStudentHistory(ctx, core.CleanString(studentID), HistoryLimit)
}
