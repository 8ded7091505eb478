package review

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jharden/campgrounds/internal/apperror"
)

// Form is the submitted review payload.
type Form struct {
	Rating int
	Body   string
}

// Validate checks the payload and returns an apperror validation error
// joining every field violation.
func (f Form) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&f.Body, validation.Required.Error("review body is required")),
	)
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	var violations []string
	for _, field := range []string{"Rating", "Body"} {
		if fieldErr, ok := errs[field]; ok {
			violations = append(violations, fieldErr.Error())
		}
	}
	return apperror.Validation(violations)
}
