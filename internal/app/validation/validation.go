// Package validation is the consistency gate in front of every mutation: it
// checks field shape, uniqueness and cross-entity references against the
// current store state and reports all violations at once as an
// apperrors.ValidationError. It holds no state and writes nothing.
package validation

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/classtrack/roster/internal/app/models"
	"github.com/classtrack/roster/internal/pkg/apperrors"
)

// Violation reason texts shared between the tag-based create checks and the
// per-field update checks, so both paths report identical errors.
const (
	ReasonRequired       = "is required"
	ReasonInvalidEmail   = "must be a valid email address"
	ReasonTaken          = "has already been taken"
	ReasonSectionMissing = "must reference an existing section"
)

var validate = validator.New()

func init() {
	// Report violations under the JSON field name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// SectionSource is the subset of the section store the validators consult.
type SectionSource interface {
	Find(ctx context.Context, id int64) (*models.Section, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}

// StudentSource is the subset of the student store the validators consult.
type StudentSource interface {
	NationalIDExists(ctx context.Context, nationalID string, excludeID int64) (bool, error)
}

// collectStructViolations runs struct-tag validation and records every
// failed rule into verr.
func collectStructViolations(req interface{}, verr *apperrors.ValidationError) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	ok := false
	if fe, isFE := err.(validator.ValidationErrors); isFE {
		fieldErrors = fe
		ok = true
	}
	if !ok {
		// InvalidValidationError means the request type itself is broken.
		return fmt.Errorf("struct validation failed: %w", err)
	}

	for _, fe := range fieldErrors {
		verr.Add(fe.Field(), reasonForTag(fe))
	}
	return nil
}

// reasonForTag creates a human-readable reason for a violated rule tag
func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ReasonRequired
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return ReasonInvalidEmail
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}
