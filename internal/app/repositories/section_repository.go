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

const sectionNameConstraint = "sections_name_key"

// SectionRepository handles section database operations
type SectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert creates a new section and fills in its generated id
func (r *SectionRepository) Insert(ctx context.Context, section *models.Section) error {
	sql, args, err := r.sb.Insert("sections").
		Columns("name").
		Values(section.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("build insert section query", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&section.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, sectionNameConstraint) {
			return ErrDuplicateSectionName
		}
		logger.Error().Err(err).Msg("Error executing insert section query")
		return apperrors.NewStoreError("insert section", err)
	}

	return nil
}

// Find retrieves a section by ID
func (r *SectionRepository) Find(ctx context.Context, id int64) (*models.Section, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("sections").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("build find section query", err)
	}

	section := &models.Section{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&section.ID, &section.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		logger.Error().Err(err).Int64("sectionID", id).Msg("Error scanning section row")
		return nil, apperrors.NewStoreError("find section", err)
	}

	return section, nil
}

// List retrieves all sections
func (r *SectionRepository) List(ctx context.Context) ([]*models.Section, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("sections").
		ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("build list sections query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list sections query")
		return nil, apperrors.NewStoreError("list sections", err)
	}
	defer rows.Close()

	sections := []*models.Section{}
	for rows.Next() {
		section := &models.Section{}
		if err := rows.Scan(&section.ID, &section.Name); err != nil {
			return nil, apperrors.NewStoreError("scan section row", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate section rows", err)
	}

	return sections, nil
}

// Update updates an existing section
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	sql, args, err := r.sb.Update("sections").
		Set("name", section.Name).
		Where(squirrel.Eq{"id": section.ID}).
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("build update section query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, sectionNameConstraint) {
			return ErrDuplicateSectionName
		}
		logger.Error().Err(err).Int64("sectionID", section.ID).Msg("Error executing update section query")
		return apperrors.NewStoreError("update section", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// Remove deletes a section by ID
func (r *SectionRepository) Remove(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("sections").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperrors.NewStoreError("build delete section query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		// The RESTRICT constraint is the authoritative guard; the service
		// checks first, but a concurrent enrolment can still land here.
		if dberrors.IsForeignKeyViolation(err, "students_section_id_fkey") {
			return apperrors.ErrSectionHasStudents
		}
		logger.Error().Err(err).Int64("sectionID", id).Msg("Error executing delete section query")
		return apperrors.NewStoreError("delete section", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// NameExists checks whether a section name is already taken, excluding the
// record with excludeID (pass 0 to exclude nothing).
func (r *SectionRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("sections").
		Where(squirrel.And{
			squirrel.Eq{"name": name},
			squirrel.NotEq{"id": excludeID},
		}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, apperrors.NewStoreError("build section name exists query", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("name", name).Msg("Error checking section name existence")
		return false, apperrors.NewStoreError("check section name existence", err)
	}

	return exists, nil
}

// HasStudents checks whether any student still references the section
func (r *SectionRepository) HasStudents(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"section_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, apperrors.NewStoreError("build section has students query", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("sectionID", id).Msg("Error checking enrolled students")
		return false, apperrors.NewStoreError("check enrolled students", err)
	}

	return exists, nil
}
