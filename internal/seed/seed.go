package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/classtrack/roster/internal/app/models"
	appRepos "github.com/classtrack/roster/internal/app/repositories"
)

// defaultSectionNames are created on first startup so the roster is usable
// immediately.
var defaultSectionNames = []string{"Paralelo A", "Paralelo B"}

// CreateDefaultData creates the default sections if the store is empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	sectionRepo := appRepos.NewSectionRepository(dbPool)

	sections, err := sectionRepo.List(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing sections during seeding")
		return err
	}
	if len(sections) > 0 {
		return nil
	}

	lgr.Info().Msg("Seeding default sections...")
	var finalErr error
	for _, name := range defaultSectionNames {
		section := &appModels.Section{Name: name}
		err := sectionRepo.Insert(ctx, section)
		if err != nil && !errors.Is(err, appRepos.ErrDuplicateSectionName) {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating default section")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
