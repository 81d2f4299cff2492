package student

import (
	"context"
	"unicode/utf8"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/school"
)

var (
	nameMinLen  = 2
	nameTag     = "studentname"
	nameText    = "name must be at least 2 characters"
	locationTag = "studentlocation"
	locationTxt = "location is required"
	classesTag  = "studentclasses"
	classesText = "select at least one class"
)

// InitValidators registers the student form validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(studentStructValidation, NewStudent{}, UpdateStudent{})
	core.RegisterCustomTranslation(validate, translator, nameTag, nameText)
	core.RegisterCustomTranslation(validate, translator, locationTag, locationTxt)
	core.RegisterCustomTranslation(validate, translator, classesTag, classesText)
}

// studentStructValidation does struct level validation on NewStudent and UpdateStudent structs.
func studentStructValidation(sl validator.StructLevel) {
	switch s := sl.Current().Interface().(type) {
	case NewStudent:
		validateStudentFields(s.Name, s.LocationID, s.ClassIDs, sl)
	case UpdateStudent:
		validateStudentFields(s.Name, s.LocationID, s.ClassIDs, sl)
	}
}

func validateStudentFields(name, locationID string, classIDs []string, sl validator.StructLevel) {
	if utf8.RuneCountInString(name) < nameMinLen {
		sl.ReportError(name, "name", "Name", nameTag, "")
	}
	if locationID == "" {
		sl.ReportError(locationID, "location_id", "LocationID", locationTag, "")
	}
	if len(classIDs) == 0 {
		sl.ReportError(classIDs, "class_ids", "ClassIDs", classesTag, "")
	}
}

// validateReferences checks that the location and every class exist.
func validateReferences(ctx context.Context, schools *school.Service, locationID string, classIDs []string) error {
	var flds []core.FieldError
	if _, err := schools.GetLocation(ctx, locationID); err != nil {
		if !core.IsNotFound(err) {
			return err
		}
		flds = append(flds, core.FieldError{Field: "location_id", Error: err.Error()})
	}
	for _, id := range classIDs {
		if _, err := schools.GetClass(ctx, id); err != nil {
			if !core.IsNotFound(err) {
				return err
			}
			flds = append(flds, core.FieldError{Field: "class_ids", Error: err.Error() + ": " + id})
			break
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func validate(ctx context.Context, form interface{}, v *validator.Validate, schools *school.Service, locationID string, classIDs []string) error {
	if err := v.Struct(form); err != nil {
		return err
	}
	return validateReferences(ctx, schools, locationID, classIDs)
}
