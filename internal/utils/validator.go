package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernameRe = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// InitValidator builds the validator and registers custom rules, both
// on the standalone instance and on gin's binding engine.
func InitValidator() {
	validate = validator.New()
	validate.RegisterValidation("username", validateUsername)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", validateUsername)
	}
}

// GetValidator returns the validator instance.
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// validateUsername allows letters, digits and underscores, 3-50 chars.
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	return usernameRe.MatchString(username)
}

// ValidateStruct validates a struct and formats failures.
func ValidateStruct(s interface{}) error {
	v := GetValidator()
	if err := v.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns validator errors into readable messages.
func formatValidationError(err error) error {
	var msgs []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			var message string
			switch tag {
			case "required":
				message = fmt.Sprintf("%s is required", field)
			case "min":
				message = fmt.Sprintf("%s must be at least %s characters", field, param)
			case "max":
				message = fmt.Sprintf("%s must be at most %s characters", field, param)
			case "email":
				message = fmt.Sprintf("%s must be a valid email address", field)
			case "username":
				message = fmt.Sprintf("%s may only contain letters, digits and underscores (3-50 chars)", field)
			default:
				message = fmt.Sprintf("%s failed validation: %s", field, tag)
			}

			msgs = append(msgs, message)
		}
	}

	if len(msgs) > 0 {
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	return err
}
