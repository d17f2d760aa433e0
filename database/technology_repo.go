package database

import (
	"context"

	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// FindAll returns all technologies in insertion order
func (r *TechnologyRepo) FindAll(ctx context.Context) ([]*models.Technology, error) {
	technologies := []*models.Technology{}
	err := r.db.WithContext(ctx).Order("id").Find(&technologies).Error
	return technologies, err
}

// Add inserts a new technology into the database
func (r *TechnologyRepo) Add(ctx context.Context, technology *models.Technology) error {
	return r.db.WithContext(ctx).Create(technology).Error
}

// AddMany inserts technologies in a single statement.
func (r *TechnologyRepo) AddMany(ctx context.Context, technologies []*models.Technology) error {
	if len(technologies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&technologies).Error
}

func (r *TechnologyRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Technology{}).Count(&count).Error
	return count, err
}

// MissingIDs returns the ids from the given list that match no technology, in input order.
func (r *TechnologyRepo) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	err := r.db.WithContext(ctx).Model(&models.Technology{}).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
