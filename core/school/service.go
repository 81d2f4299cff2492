package school

import (
	"context"
	"time"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/calendar"
)

var (
	// errors
	ErrLocationNotFound = core.NewNotFoundError("location")
	ErrClassNotFound    = core.NewNotFoundError("class")
)

type (
	Repository interface {
		// QueryLocations returns all locations ordered by name.
		QueryLocations(ctx context.Context) ([]Location, error)
		// QueryClasses returns all classes ordered by name.
		QueryClasses(ctx context.Context) ([]Class, error)
		GetLocationByID(ctx context.Context, id string) (Location, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		// UpsertLocationByName returns the location with loc.Name, creating it when missing.
		UpsertLocationByName(ctx context.Context, loc Location) (Location, error)
		// UpsertClassByName returns the class with cls.Name, creating it when missing.
		UpsertClassByName(ctx context.Context, cls Class) (Class, error)
		// GetStats counts PRESENT marks dated `since` or later.
		GetStats(ctx context.Context, since time.Time) (Stats, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) ListLocations(ctx context.Context) ([]Location, error) {
	return svc.repo.QueryLocations(ctx)
}

func (svc *Service) ListClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx)
}

func (svc *Service) GetLocation(ctx context.Context, id string) (Location, error) {
	return svc.repo.GetLocationByID(ctx, core.CleanString(id))
}

func (svc *Service) GetClass(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, core.CleanString(id))
}

func (svc *Service) EnsureLocation(ctx context.Context, name string) (Location, error) {
	name = core.CleanString(name)
	if name == "" {
		return Location{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: "this field cannot be blank"})
	}
	return svc.repo.UpsertLocationByName(ctx, Location{Name: name})
}

func (svc *Service) EnsureClass(ctx context.Context, name string) (Class, error) {
	name = core.CleanString(name)
	if name == "" {
		return Class{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: "this field cannot be blank"})
	}
	return svc.repo.UpsertClassByName(ctx, Class{Name: name})
}

// Stats summarizes students per location, enrollments per class and today's PRESENT marks.
func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	return svc.repo.GetStats(ctx, calendar.Today())
}
