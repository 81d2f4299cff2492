package student

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/calendar"
	"github.com/kalashala/kalashala/core/school"
)

// OrderingFields are the fields students can be ordered by.
var OrderingFields = []string{"name", "created_at", "admission_date"}

type Student struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Phone         null.String `json:"phone"`
	ParentName    null.String `json:"parent_name"`
	LocationID    string      `json:"location_id"`
	AdmissionDate time.Time   `json:"admission_date"` // start of day, local
	CreatedAt     time.Time   `json:"created_at"`     // UTC
	ClassIDs      []string    `json:"class_ids"`
}

// Listing is a student along with its location and enrolled classes.
type Listing struct {
	Student
	Location school.Location `json:"location"`
	Classes  []school.Class  `json:"classes"`
}

// NewStudent contains information needed to admit a new Student.
type NewStudent struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	ParentName    string   `json:"parent_name"`
	LocationID    string   `json:"location_id"`
	AdmissionDate string   `json:"admission_date" validate:"omitempty,ymd"` // YYYY-MM-DD, defaults to today
	ClassIDs      []string `json:"class_ids"`
}

func (ns *NewStudent) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Phone = core.CleanString(ns.Phone)
	ns.ParentName = core.CleanString(ns.ParentName)
	ns.LocationID = core.CleanString(ns.LocationID)
	ns.AdmissionDate = core.CleanString(ns.AdmissionDate)
	ns.ClassIDs = core.UniqueStrings(ns.ClassIDs)
}

// Validate cleans ns, checks its fields and that its location and classes exist.
func (ns *NewStudent) Validate(ctx context.Context, v *validator.Validate, schools *school.Service) error {
	ns.clean()
	return validate(ctx, ns, v, schools, ns.LocationID, ns.ClassIDs)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Blank optional fields are cleared; a blank AdmissionDate keeps the current one.
type UpdateStudent struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	ParentName    string   `json:"parent_name"`
	LocationID    string   `json:"location_id"`
	AdmissionDate string   `json:"admission_date" validate:"omitempty,ymd"`
	ClassIDs      []string `json:"class_ids"`
}

func (us *UpdateStudent) clean() {
	us.Name = core.CleanString(us.Name)
	us.Phone = core.CleanString(us.Phone)
	us.ParentName = core.CleanString(us.ParentName)
	us.LocationID = core.CleanString(us.LocationID)
	us.AdmissionDate = core.CleanString(us.AdmissionDate)
	us.ClassIDs = core.UniqueStrings(us.ClassIDs)
}

func (us *UpdateStudent) Validate(ctx context.Context, v *validator.Validate, schools *school.Service) error {
	us.clean()
	return validate(ctx, us, v, schools, us.LocationID, us.ClassIDs)
}

type QueryFilter struct {
	Search string `query:"search"` // case-insensitive match on student or location name
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// parseAdmissionDate returns the start of the given day, or of today when blank.
func parseAdmissionDate(s string) (time.Time, error) {
	if s == "" {
		return calendar.Today(), nil
	}
	return calendar.ParseDay(s)
}

func nullString(s string) null.String {
	return null.NewString(s, s != "")
}
