package database

import (
	"context"

	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rs/zerolog/log"
)

// SeedTechnologies inserts the initial technology list when the table is empty.
// It returns the number of rows inserted.
func SeedTechnologies(ctx context.Context, repo *TechnologyRepo) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("technologies already seeded, skipping")
		return 0, nil
	}

	technologies := make([]*models.Technology, 0, len(models.SeedTechnologyNames))
	for _, name := range models.SeedTechnologyNames {
		technologies = append(technologies, &models.Technology{Name: name})
	}

	if err := repo.AddMany(ctx, technologies); err != nil {
		return 0, err
	}

	log.Info().Int("inserted", len(technologies)).Msg("seeded technologies")
	return len(technologies), nil
}
