package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/pantraqa/internal/domain"
)

// ValidationError lists invalid form fields keyed by their form name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid input: " + strings.Join(names, ", ")
}

// FieldError returns a ValidationError for a single field.
func FieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "gte":
		return "Must be at least " + fe.Param()
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Invalid value"
	}
}

type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type RegisterInput struct {
	Email    string      `form:"email" validate:"required,email"`
	Name     string      `form:"name" validate:"required,max=100"`
	Password string      `form:"password" validate:"required,min=6"`
	Role     domain.Role `form:"role" validate:"required,oneof=staff manager admin"`
}

type DrinkInput struct {
	Name     string `form:"name" validate:"required,max=100"`
	Size     string `form:"size" validate:"required,max=50"`
	Category string `form:"category" validate:"required,max=50"`
}

type LocationInput struct {
	Name        string              `form:"name" validate:"required,max=100"`
	Type        domain.LocationType `form:"type" validate:"required,oneof=pantry cage"`
	Description string              `form:"description" validate:"max=500"`
}

type MovementInput struct {
	DrinkID    int64 `form:"drinkId" validate:"gt=0"`
	LocationID int64 `form:"storageLocationId" validate:"gt=0"`
	Quantity   int   `form:"quantity" validate:"gt=0"`
}

type ThresholdInput struct {
	Threshold int `form:"threshold" validate:"gte=1"`
}
