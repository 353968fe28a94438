package dto

import "github.com/classtrack/roster/internal/app/models"

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	NationalID string `json:"nationalId" validate:"required,max=10"`
	Email      string `json:"email" validate:"required,email"`
	SectionID  int64  `json:"sectionId" validate:"required,gt=0"`
}

// UpdateStudentRequest represents student update data. All fields are
// optional; a field is validated and applied only when present.
type UpdateStudentRequest struct {
	Name       *string `json:"name"`
	NationalID *string `json:"nationalId"`
	Email      *string `json:"email"`
	SectionID  *int64  `json:"sectionId"`
}

// StudentResponse represents the full student record, returned by mutations
type StudentResponse struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Carlos Perez"`
	NationalID string `json:"nationalId" example:"1102567890"`
	Email      string `json:"email" example:"carlos@example.com"`
	SectionID  int64  `json:"sectionId" example:"1"`
}

// NewStudentResponse builds a StudentResponse from the model
func NewStudentResponse(student *models.Student) StudentResponse {
	return StudentResponse{
		ID:         student.ID,
		Name:       student.Name,
		NationalID: student.NationalID,
		Email:      student.Email,
		SectionID:  student.SectionID,
	}
}

// StudentListItem represents one student in the list endpoint, enriched with
// the section name. SectionName is null when the reference is dangling.
type StudentListItem struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"name" example:"Carlos Perez"`
	NationalID  string  `json:"nationalId" example:"1102567890"`
	Email       string  `json:"email" example:"carlos@example.com"`
	SectionName *string `json:"sectionName" example:"Paralelo A"`
}

// NewStudentListItem builds a StudentListItem from the model
func NewStudentListItem(student *models.Student) StudentListItem {
	return StudentListItem{
		ID:          student.ID,
		Name:        student.Name,
		NationalID:  student.NationalID,
		Email:       student.Email,
		SectionName: student.SectionName,
	}
}

// StudentDetailResponse represents a single student read, enriched with the
// section name. The national ID is intentionally omitted here.
type StudentDetailResponse struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"name" example:"Carlos Perez"`
	Email       string  `json:"email" example:"carlos@example.com"`
	SectionName *string `json:"sectionName" example:"Paralelo A"`
}

// NewStudentDetailResponse builds a StudentDetailResponse from the model
func NewStudentDetailResponse(student *models.Student) StudentDetailResponse {
	return StudentDetailResponse{
		ID:          student.ID,
		Name:        student.Name,
		Email:       student.Email,
		SectionName: student.SectionName,
	}
}

// StudentMutationResponse wraps a mutated student with a confirmation message
type StudentMutationResponse struct {
	Message string          `json:"message" example:"Student created successfully"`
	Student StudentResponse `json:"student"`
}
