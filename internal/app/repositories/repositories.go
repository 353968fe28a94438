package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtrack/roster/internal/app/models"
)

// Shared repository errors
var (
	// ErrDuplicateSectionName is returned when the sections_name_key
	// constraint rejects a write.
	ErrDuplicateSectionName = errors.New("section name already in use")

	// ErrDuplicateNationalID is returned when the students_national_id_key
	// constraint rejects a write.
	ErrDuplicateNationalID = errors.New("national id already in use")

	// ErrSectionReferenceMissing is returned when the students_section_id_fkey
	// constraint rejects a write.
	ErrSectionReferenceMissing = errors.New("referenced section does not exist")
)

// SectionStore is the persistence capability set the section side of the
// application relies on. *SectionRepository is the PostgreSQL implementation.
type SectionStore interface {
	Find(ctx context.Context, id int64) (*models.Section, error)
	List(ctx context.Context) ([]*models.Section, error)
	Insert(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Remove(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	HasStudents(ctx context.Context, id int64) (bool, error)
}

// StudentStore is the persistence capability set the student side of the
// application relies on. *StudentRepository is the PostgreSQL implementation.
type StudentStore interface {
	Find(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Remove(ctx context.Context, id int64) error
	NationalIDExists(ctx context.Context, nationalID string, excludeID int64) (bool, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	SectionRepository *SectionRepository
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SectionRepository: NewSectionRepository(db),
		StudentRepository: NewStudentRepository(db),
	}
}
