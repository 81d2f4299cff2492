package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("student")
)

type (
	Repository interface {
		// CreateStudent inserts the student and one enrollment per class id, atomically.
		CreateStudent(ctx context.Context, s Student) (Student, error)
		// UpdateStudent overwrites the student fields and reconciles its enrollments against s.ClassIDs
		// in a single transaction. It returns the applied diff.
		UpdateStudent(ctx context.Context, s Student) (Diff, error)
		// DeleteStudent removes the student along with its enrollments, attendance marks and fees.
		DeleteStudent(ctx context.Context, id string) error
		// GetStudent returns the student with its enrolled class ids.
		GetStudent(ctx context.Context, id string) (Student, error)
		GetListing(ctx context.Context, id string) (Listing, error)
		// QueryStudents applies filter and ordering, defaulting to newest first.
		QueryStudents(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Listing, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create admits a validated NewStudent, enrolling it in all of ns.ClassIDs.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	admission, err := parseAdmissionDate(ns.AdmissionDate)
	if err != nil {
		return Student{}, err
	}
	s := Student{
		Name:          ns.Name,
		Phone:         nullString(ns.Phone),
		ParentName:    nullString(ns.ParentName),
		LocationID:    ns.LocationID,
		AdmissionDate: admission,
		CreatedAt:     time.Now().UTC(),
		ClassIDs:      ns.ClassIDs,
	}
	return svc.repo.CreateStudent(ctx, s)
}

// Update applies a validated UpdateStudent to the student `id` and syncs its enrollments with us.ClassIDs.
func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, Diff, error) {
	orig, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Student{}, Diff{}, err
	}

	admission := orig.AdmissionDate
	if us.AdmissionDate != "" {
		if admission, err = parseAdmissionDate(us.AdmissionDate); err != nil {
			return Student{}, Diff{}, err
		}
	}

	s := Student{
		ID:            orig.ID,
		Name:          us.Name,
		Phone:         nullString(us.Phone),
		ParentName:    nullString(us.ParentName),
		LocationID:    us.LocationID,
		AdmissionDate: admission,
		CreatedAt:     orig.CreatedAt,
		ClassIDs:      us.ClassIDs,
	}
	diff, err := svc.repo.UpdateStudent(ctx, s)
	if err != nil {
		return Student{}, Diff{}, errors.Wrap(err, "updating student")
	}
	return s, diff, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStudent(ctx, core.CleanString(id))
}

// Get returns the student with its enrolled class ids, as needed to edit it.
func (svc *Service) Get(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, core.CleanString(id))
}

// Detail returns the student with its location and classes.
func (svc *Service) Detail(ctx context.Context, id string) (Listing, error) {
	return svc.repo.GetListing(ctx, core.CleanString(id))
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Listing, error) {
	if filter == nil {
		filter = new(QueryFilter)
	}
	filter.Clean()
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	return svc.repo.QueryStudents(ctx, filter, ordering)
}
