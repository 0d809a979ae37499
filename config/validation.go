package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []error

	switch cfg.DBDriver {
	case "postgres":
		if env == Production && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "required in production"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "required when DB_DRIVER is sqlite"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "must be postgres or sqlite"})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required"})
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "is required"})
	}

	if cfg.RecipeRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "RECIPE_RATE_LIMIT", Message: "must not be negative"})
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		errs = append(errs, ValidationError{Field: "LLM temperature", Message: "must be between 0 and 2"})
	}
	if cfg.LLM.MaxOutputTokens <= 0 {
		errs = append(errs, ValidationError{Field: "LLM max_output_tokens", Message: "must be positive"})
	}

	if cfg.S3Enabled() && cfg.AWSRegion == "" {
		errs = append(errs, ValidationError{Field: "AWS_REGION", Message: "required when S3_BUCKET_NAME is set"})
	}

	return errors.Join(errs...)
}
