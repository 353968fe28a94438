package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/classtrack/roster/internal/app/models"
	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/app/repositories"
	"github.com/classtrack/roster/internal/app/validation"
	"github.com/classtrack/roster/internal/pkg/apperrors"
)

// StudentService handles student CRUD, enforcing national-id uniqueness and
// section referential integrity. Reads carry the section name.
type StudentService struct {
	students  repositories.StudentStore
	sections  repositories.SectionStore
	validator *validation.StudentValidator
}

// NewStudentService creates a new student service instance
func NewStudentService(students repositories.StudentStore, sections repositories.SectionStore) *StudentService {
	return &StudentService{
		students:  students,
		sections:  sections,
		validator: validation.NewStudentValidator(students, sections),
	}
}

// List returns all students, each enriched with its section's name. A
// dangling section reference yields a null name, not an error.
func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.students.List(ctx)
}

// Create validates the full field set, including section existence, and
// persists a new student.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.ValidateCreate(ctx, req); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:       req.Name,
		NationalID: req.NationalID,
		Email:      req.Email,
		SectionID:  req.SectionID,
	}
	if err := s.students.Insert(ctx, student); err != nil {
		if verr := translateStudentConstraint(err); verr != nil {
			return nil, verr
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("studentId", student.ID).Int64("sectionId", student.SectionID).Msg("student created")
	return student, nil
}

// Get returns the student with the given id, enriched with its section name,
// or ErrStudentNotFound.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.Find(ctx, id)
}

// Update applies the fields present in req to an existing student. Only
// supplied fields are validated; an update carrying no fields is an
// idempotent no-op returning the record unchanged.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(ctx, id, req); err != nil {
		return nil, err
	}

	if req.Name == nil && req.NationalID == nil && req.Email == nil && req.SectionID == nil {
		return student, nil
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.NationalID != nil {
		student.NationalID = *req.NationalID
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.SectionID != nil {
		student.SectionID = *req.SectionID
	}

	if err := s.students.Update(ctx, student); err != nil {
		if verr := translateStudentConstraint(err); verr != nil {
			return nil, verr
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("studentId", student.ID).Msg("student updated")

	// Re-read so the section name reflects a possible section change.
	return s.students.Find(ctx, id)
}

// Delete removes a student by ID
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.students.Find(ctx, id); err != nil {
		return err
	}

	if err := s.students.Remove(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("studentId", id).Msg("student deleted")
	return nil
}

// translateStudentConstraint maps a store constraint violation to the same
// validation failure the pre-check would have produced, so a lost race still
// surfaces as a field error. Returns nil for unrelated errors.
func translateStudentConstraint(err error) *apperrors.ValidationError {
	switch {
	case errors.Is(err, repositories.ErrDuplicateNationalID):
		return apperrors.NewValidationError().Add("nationalId", validation.ReasonTaken)
	case errors.Is(err, repositories.ErrSectionReferenceMissing):
		return apperrors.NewValidationError().Add("sectionId", validation.ReasonSectionMissing)
	default:
		return nil
	}
}
