package apiutil

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var reasonByTag = map[string]string{
	"required": "is required",
	"max":      "is too long",
	"min":      "is too short",
	"uuid":     "must be a valid ID",
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" && name != "-" {
				return name
			}
			return fld.Name
		})
	})
	return validate
}

// ValidateForm checks form against its `validate` tags and reports the first
// failure as a FieldError named after the field's `form` tag.
func ValidateForm(form any) error {
	err := getValidator().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate form: %w", err)
	}
	fe := fieldErrs[0]
	reason, ok := reasonByTag[fe.Tag()]
	if !ok {
		reason = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return FieldError{Field: fe.Field(), Reason: reason}
}
