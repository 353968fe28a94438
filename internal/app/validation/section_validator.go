package validation

import (
	"context"

	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/pkg/apperrors"
	rules "github.com/classtrack/roster/internal/pkg/validation"
)

// SectionValidator checks section mutations against field rules and the
// current store state.
type SectionValidator struct {
	sections SectionSource
}

// NewSectionValidator creates a new SectionValidator
func NewSectionValidator(sections SectionSource) *SectionValidator {
	return &SectionValidator{sections: sections}
}

// ValidateCreate checks a section creation request. It returns an
// *apperrors.ValidationError listing every violated field, or nil.
func (v *SectionValidator) ValidateCreate(ctx context.Context, req dto.CreateSectionRequest) error {
	verr := apperrors.NewValidationError()
	if err := collectStructViolations(req, verr); err != nil {
		return err
	}

	// Uniqueness pre-check, only when the field shape is already acceptable.
	if _, rejected := verr.Violations["name"]; !rejected {
		exists, err := v.sections.NameExists(ctx, req.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			verr.Add("name", ReasonTaken)
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// ValidateUpdate checks a partial section update. Only fields present in the
// request are validated; the uniqueness check excludes the record under
// update.
func (v *SectionValidator) ValidateUpdate(ctx context.Context, id int64, req dto.UpdateSectionRequest) error {
	verr := apperrors.NewValidationError()

	if req.Name != nil {
		reasons := rules.NewStringValidation(*req.Name).
			WithMaxLength(rules.NameMaxLength).
			Check()
		for _, reason := range reasons {
			verr.Add("name", reason)
		}

		if len(reasons) == 0 {
			exists, err := v.sections.NameExists(ctx, *req.Name, id)
			if err != nil {
				return err
			}
			if exists {
				verr.Add("name", ReasonTaken)
			}
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}
