package campground

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jharden/campgrounds/internal/apperror"
)

// Form is the submitted campground payload. Validation runs before any
// authorization lookup or persistence.
type Form struct {
	Title       string
	Location    string
	Description string
	Price       float64
}

// Validate checks the payload and returns an apperror validation error
// joining every field violation.
func (f Form) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("title is required")),
		validation.Field(&f.Location, validation.Required.Error("location is required")),
		validation.Field(&f.Description, validation.Required.Error("description is required")),
		validation.Field(&f.Price, validation.Min(0.0).Error("price must be no less than 0")),
	)
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	// Fixed field order so the joined message is deterministic.
	var violations []string
	for _, field := range []string{"Title", "Location", "Description", "Price"} {
		if fieldErr, ok := errs[field]; ok {
			violations = append(violations, fieldErr.Error())
		}
	}
	return apperror.Validation(violations)
}
