package validation

import (
	"context"
	"errors"

	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/pkg/apperrors"
	rules "github.com/classtrack/roster/internal/pkg/validation"
)

// StudentValidator checks student mutations against field rules, national-id
// uniqueness and section existence.
type StudentValidator struct {
	students StudentSource
	sections SectionSource
}

// NewStudentValidator creates a new StudentValidator
func NewStudentValidator(students StudentSource, sections SectionSource) *StudentValidator {
	return &StudentValidator{
		students: students,
		sections: sections,
	}
}

// ValidateCreate checks a student creation request. It returns an
// *apperrors.ValidationError listing every violated field, or nil.
func (v *StudentValidator) ValidateCreate(ctx context.Context, req dto.CreateStudentRequest) error {
	verr := apperrors.NewValidationError()
	if err := collectStructViolations(req, verr); err != nil {
		return err
	}

	if _, rejected := verr.Violations["nationalId"]; !rejected {
		exists, err := v.students.NationalIDExists(ctx, req.NationalID, 0)
		if err != nil {
			return err
		}
		if exists {
			verr.Add("nationalId", ReasonTaken)
		}
	}

	if _, rejected := verr.Violations["sectionId"]; !rejected {
		if err := v.checkSectionExists(ctx, req.SectionID, verr); err != nil {
			return err
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// ValidateUpdate checks a partial student update. Only fields present in the
// request are validated; uniqueness checks exclude the record under update.
func (v *StudentValidator) ValidateUpdate(ctx context.Context, id int64, req dto.UpdateStudentRequest) error {
	verr := apperrors.NewValidationError()

	if req.Name != nil {
		for _, reason := range rules.NewStringValidation(*req.Name).
			WithMaxLength(rules.NameMaxLength).
			Check() {
			verr.Add("name", reason)
		}
	}

	if req.NationalID != nil {
		reasons := rules.NewStringValidation(*req.NationalID).
			WithMaxLength(rules.NationalIDMaxLength).
			Check()
		for _, reason := range reasons {
			verr.Add("nationalId", reason)
		}

		if len(reasons) == 0 {
			exists, err := v.students.NationalIDExists(ctx, *req.NationalID, id)
			if err != nil {
				return err
			}
			if exists {
				verr.Add("nationalId", ReasonTaken)
			}
		}
	}

	// Same engine as the create path, so an email accepted at create is
	// never rejected when re-submitted on update.
	if req.Email != nil {
		switch {
		case *req.Email == "":
			verr.Add("email", ReasonRequired)
		case validate.Var(*req.Email, "email") != nil:
			verr.Add("email", ReasonInvalidEmail)
		}
	}

	if req.SectionID != nil {
		if *req.SectionID <= 0 {
			verr.Add("sectionId", ReasonSectionMissing)
		} else if err := v.checkSectionExists(ctx, *req.SectionID, verr); err != nil {
			return err
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

func (v *StudentValidator) checkSectionExists(ctx context.Context, sectionID int64, verr *apperrors.ValidationError) error {
	_, err := v.sections.Find(ctx, sectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			verr.Add("sectionId", ReasonSectionMissing)
			return nil
		}
		return err
	}
	return nil
}
