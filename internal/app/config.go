package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchemaPath   string `validate:"required"` // hcl file or directory
	SnapshotPath string // yaml file, optional

	LogFormat          string `validate:"oneof=text json"`
	LogLevel           string `validate:"oneof=debug info warn error"`
	MaxRepeatInstances int    `validate:"gte=1"`
}

var configValidator = validator.New()

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := configValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeField(fe))
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}
	return &cfg, nil
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required configuration field and cannot be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag())
	}
}
