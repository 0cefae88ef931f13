package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// humanize: end_date -> End Date
func humanize(field string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}

// MapValidationError dipakai untuk error binding gin (query / uri). Form
// mutasi punya pesan per field sendiri di package form.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		if e.Tag() == "required" {
			return RequiredField(humanize(e.Field()), e.Field())
		}
		return InvalidField(humanize(e.Field()), e.Field(), e.Tag())
	}
	return errInvalidQuery
}
