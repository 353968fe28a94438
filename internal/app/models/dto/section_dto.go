package dto

import "github.com/classtrack/roster/internal/app/models"

// CreateSectionRequest represents section creation data
type CreateSectionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateSectionRequest represents section update data. All fields are
// optional; absent fields are left untouched.
type UpdateSectionRequest struct {
	Name *string `json:"name"`
}

// SectionResponse represents basic section information
type SectionResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Paralelo A"`
}

// NewSectionResponse builds a SectionResponse from the model
func NewSectionResponse(section *models.Section) SectionResponse {
	return SectionResponse{
		ID:   section.ID,
		Name: section.Name,
	}
}

// SectionMutationResponse wraps a mutated section with a confirmation message
type SectionMutationResponse struct {
	Message string          `json:"message" example:"Section created successfully"`
	Section SectionResponse `json:"section"`
}
