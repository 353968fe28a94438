package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtrack/roster/internal/app/models"
	"github.com/classtrack/roster/internal/pkg/apperrors"
	"github.com/classtrack/roster/internal/pkg/dberrors"
	"github.com/classtrack/roster/internal/pkg/logger"
)

const (
	nationalIDConstraint = "students_national_id_key"
	sectionFKConstraint  = "students_section_id_fkey"
)

// StudentRepository handles student database operations. Reads join the
// sections table so the section name travels with the record; the join is a
// LEFT JOIN, a dangling section_id yields a null name instead of an error.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StudentRepository) selectWithSection() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.name", "s.national_id", "s.email", "s.section_id", "p.name").
		From("students s").
		LeftJoin("sections p ON p.id = s.section_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.NationalID,
		&student.Email,
		&student.SectionID,
		&student.SectionName,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Insert creates a new student and fills in its generated id
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "national_id", "email", "section_id").
		Values(student.Name, student.NationalID, student.Email, student.SectionID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("build insert student query", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, nationalIDConstraint) {
			return ErrDuplicateNationalID
		}
		if dberrors.IsForeignKeyViolation(err, sectionFKConstraint) {
			return ErrSectionReferenceMissing
		}
		logger.Error().Err(err).Msg("Error executing insert student query")
		return apperrors.NewStoreError("insert student", err)
	}

	return nil
}

// Find retrieves a student by ID, enriched with its section name
func (r *StudentRepository) Find(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectWithSection().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("build find student query", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, apperrors.NewStoreError("find student", err)
	}

	return student, nil
}

// List retrieves all students, each enriched with its section name
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.selectWithSection().ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("build list students query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, apperrors.NewStoreError("list students", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("scan student row", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate student rows", err)
	}

	return students, nil
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":        student.Name,
			"national_id": student.NationalID,
			"email":       student.Email,
			"section_id":  student.SectionID,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("build update student query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, nationalIDConstraint) {
			return ErrDuplicateNationalID
		}
		if dberrors.IsForeignKeyViolation(err, sectionFKConstraint) {
			return ErrSectionReferenceMissing
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return apperrors.NewStoreError("update student", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Remove deletes a student by ID
func (r *StudentRepository) Remove(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("build delete student query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return apperrors.NewStoreError("delete student", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// NationalIDExists checks whether a national ID is already taken, excluding
// the record with excludeID (pass 0 to exclude nothing).
func (r *StudentRepository) NationalIDExists(ctx context.Context, nationalID string, excludeID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.And{
			squirrel.Eq{"national_id": nationalID},
			squirrel.NotEq{"id": excludeID},
		}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, apperrors.NewStoreError("build national id exists query", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking national id existence")
		return false, apperrors.NewStoreError("check national id existence", err)
	}

	return exists, nil
}
