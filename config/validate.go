package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// a command template must contain something to run
	_ = v.RegisterValidation("cmdtemplate", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Validate checks the configuration before any file is touched.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", flagName(e.Field()))
	case "dir":
		return fmt.Sprintf("%s %q is not an existing directory", flagName(e.Field()), e.Value())
	case "cmdtemplate":
		return fmt.Sprintf("%s must not be blank", flagName(e.Field()))
	}
	return fmt.Sprintf("%s failed rule %q", flagName(e.Field()), e.Tag())
}

// flagName maps a struct field to the CLI flag users know it by.
func flagName(field string) string {
	switch field {
	case "AppendTo":
		return "--appendTo"
	case "LogFile":
		return "--log-file"
	}
	return "--" + strings.ToLower(field)
}
