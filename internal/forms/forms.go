// Package forms performs local, pre-network validation of user input.
// Validation failures never reach the backend; they surface immediately
// in the UI.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ayosnow/internal/marketplace"
)

var validate = validator.New()

// Registration is the DETAILS step of the signup wizard. Skill is only
// required for workers; ConfirmPassword must match Password.
type Registration struct {
	Name            string `validate:"required,min=2"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Role            string `validate:"required,oneof=CUSTOMER WORKER"`
	Skill           string `validate:"required_if=Role WORKER"`
}

// Booking is the customer's new-service request form.
type Booking struct {
	Category    string `validate:"required"`
	Description string `validate:"required,min=10"`
}

// Login only requires both fields to be present; format checking is the
// backend's business.
type Login struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Check validates v and returns a single human-readable error describing
// every failed field, or nil.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// fieldError converts a single ValidationError into a user-facing message.
func fieldError(fe validator.FieldError) string {
	field := humanField(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return field + " is required for workers"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func humanField(name string) string {
	switch name {
	case "ConfirmPassword":
		return "password confirmation"
	case "Category":
		return "service category"
	case "Description":
		return "task description"
	default:
		return strings.ToLower(name)
	}
}

// NewRegistration seeds a registration form for the chosen role, clearing
// the skill for customers.
func NewRegistration(role marketplace.Role) Registration {
	return Registration{Role: string(role)}
}

// SkillPayload returns the skill as the register endpoint expects it:
// the value for workers, nil for customers.
func (r Registration) SkillPayload() *string {
	if r.Role == string(marketplace.RoleWorker) && r.Skill != "" {
		s := r.Skill
		return &s
	}
	return nil
}
