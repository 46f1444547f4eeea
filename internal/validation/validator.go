// Package validation is the gate every create and replace payload passes before
// it reaches the inventory service.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

// Violation names the field and the constraint it failed.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// Violations is returned when a payload is rejected. It is never empty.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", violation.Field, violation.Constraint))
	}
	return "invalid product: " + strings.Join(parts, ", ")
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report json names (name, price) rather than Go field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &Validator{validate: validate}
}

// Product checks a candidate payload and returns Violations when it is rejected.
func (v *Validator) Product(payload domain.ProductPayload) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	violations := make(Violations, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, Violation{Field: e.Field(), Constraint: e.Tag()})
	}
	return violations
}

// Malformed is the violation reported for a body that could not be decoded.
func Malformed() Violations {
	return Violations{{Field: "body", Constraint: "json"}}
}
