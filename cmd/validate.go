package cmd

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/petnolja/petcli/internal/filter"
)

var inputValidator = newInputValidator()

// newInputValidator reports field errors under their flag names so messages
// read like `--min-price must be a number`.
func newInputValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("amount", validateAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("flag")
		if name == "" || name == "-" {
			return fld.Name
		}
		return "--" + name
	})
	return v
}

func validateAmount(fl validator.FieldLevel) bool {
	_, ok := filter.ParseAmount(fl.Field().String())
	return ok
}

// validateInput runs struct validation and reports the first failing field as
// an invalid-arguments error carrying the given suggestions.
func validateInput(input any, suggestions ...string) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	cliErr := classifyCLIError(err)
	cliErr.Suggestions = append(cliErr.Suggestions, suggestions...)
	return cliErr
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s (got %q)", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	case "amount":
		return fmt.Sprintf("must be a number such as 15000 or 15,000 (got %q)", fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
