package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64  `json:"id" db:"id" example:"1"`                            // Unique identifier for the student record
	Name       string `json:"name" db:"name" example:"Carlos Perez"`             // Student's full name
	NationalID string `json:"nationalId" db:"national_id" example:"1102567890"`  // Student's national ID (cedula), unique
	Email      string `json:"email" db:"email" example:"carlos@example.com"`     // Contact email
	SectionID  int64  `json:"sectionId" db:"section_id" example:"1"`             // ID of the section the student belongs to

	// SectionName is populated on reads by joining the sections table. It is
	// nil when the referenced section no longer exists.
	SectionName *string `json:"sectionName,omitempty"`
}
