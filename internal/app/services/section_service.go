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

// SectionService handles section CRUD, enforcing name uniqueness and the
// block-on-delete policy for sections with enrolled students.
type SectionService struct {
	sections  repositories.SectionStore
	validator *validation.SectionValidator
}

// NewSectionService creates a new section service instance
func NewSectionService(sections repositories.SectionStore) *SectionService {
	return &SectionService{
		sections:  sections,
		validator: validation.NewSectionValidator(sections),
	}
}

// List returns all sections in store order
func (s *SectionService) List(ctx context.Context) ([]*models.Section, error) {
	return s.sections.List(ctx)
}

// Create validates and persists a new section
func (s *SectionService) Create(ctx context.Context, req dto.CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.ValidateCreate(ctx, req); err != nil {
		return nil, err
	}

	section := &models.Section{Name: req.Name}
	if err := s.sections.Insert(ctx, section); err != nil {
		// A concurrent create can slip past the pre-check; the unique index
		// catches it and the caller sees the same validation failure.
		if errors.Is(err, repositories.ErrDuplicateSectionName) {
			return nil, apperrors.NewValidationError().Add("name", validation.ReasonTaken)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("sectionId", section.ID).Str("name", section.Name).Msg("section created")
	return section, nil
}

// Get returns the section with the given id, or ErrSectionNotFound
func (s *SectionService) Get(ctx context.Context, id int64) (*models.Section, error) {
	return s.sections.Find(ctx, id)
}

// Update applies the fields present in req to an existing section. An update
// carrying no fields is an idempotent no-op returning the record unchanged.
func (s *SectionService) Update(ctx context.Context, id int64, req dto.UpdateSectionRequest) (*models.Section, error) {
	section, err := s.sections.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(ctx, id, req); err != nil {
		return nil, err
	}

	if req.Name == nil {
		return section, nil
	}

	section.Name = *req.Name
	if err := s.sections.Update(ctx, section); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSectionName) {
			return nil, apperrors.NewValidationError().Add("name", validation.ReasonTaken)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("sectionId", section.ID).Msg("section updated")
	return section, nil
}

// Delete removes a section and returns its last snapshot. Sections that
// still have enrolled students are not deleted.
func (s *SectionService) Delete(ctx context.Context, id int64) (*models.Section, error) {
	section, err := s.sections.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	hasStudents, err := s.sections.HasStudents(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasStudents {
		return nil, apperrors.ErrSectionHasStudents
	}

	if err := s.sections.Remove(ctx, id); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("sectionId", id).Msg("section deleted")
	return section, nil
}
