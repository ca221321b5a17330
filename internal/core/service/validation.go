package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

// Limits enforced by the validation tags below
const (
	MaxUsernameLength = 10
	MaxTitleLength    = 100
	MinPasswordLength = 8
	MaxPasswordLength = 20
)

const passwordSpecialChars = "@$!%*?&"

type registrationInput struct {
	Username string `json:"username" validate:"notblank,max=10"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=8,max=20,password"`
}

type credentialsInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type profileInput struct {
	Username        string  `json:"username" validate:"notblank,max=10"`
	Email           string  `json:"email" validate:"notblank,email"`
	CurrentPassword string  `json:"currentPassword" validate:"notblank"`
	NewPassword     *string `json:"newPassword" validate:"omitnil,notblank,min=8,max=20,password"`
}

type passwordChangeInput struct {
	CurrentPassword string `json:"currentPassword" validate:"notblank"`
	NewPassword     string `json:"newPassword" validate:"notblank,min=8,max=20,password"`
}

type scheduleInput struct {
	Title   string `json:"title" validate:"notblank,max=100"`
	Content string `json:"content" validate:"notblank"`
}

type commentInput struct {
	Content string `json:"content" validate:"notblank"`
}

type pageInput struct {
	Page int `json:"page" validate:"min=1"`
	Size int `json:"size" validate:"min=1"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(errors.WithStack(err))
	}

	if err := v.RegisterValidation("password", validatePassword); err != nil {
		panic(errors.WithStack(err))
	}

	return v
}

// validateInput checks input against its validation tags and reports
// failures as a *ValidationError, one message per field.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.WithStack(err)
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		if _, exists := fields[fieldErr.Field()]; exists {
			continue
		}

		fields[fieldErr.Field()] = fieldMessage(fieldErr)
	}

	return errors.WithStack(&ValidationError{Fields: fields})
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "password":
		return "must contain a letter, a digit and one of " + passwordSpecialChars + ", and no other characters"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fieldErr.Param())
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("must contain at least %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
	default:
		return "is invalid"
	}
}

// validatePassword accepts ASCII letters, digits and the special characters
// only, with at least one of each class.
func validatePassword(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit, hasSpecial bool

	for _, r := range fl.Field().String() {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasLetter && hasDigit && hasSpecial
}
