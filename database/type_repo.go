package database

import (
	"context"

	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
)

type TypeRepo struct {
	db *gorm.DB
}

func NewTypeRepo(db *gorm.DB) *TypeRepo {
	return &TypeRepo{db}
}

// FindAll returns all types in insertion order
func (r *TypeRepo) FindAll(ctx context.Context) ([]*models.Type, error) {
	types := []*models.Type{}
	err := r.db.WithContext(ctx).Order("id").Find(&types).Error
	return types, err
}

func (r *TypeRepo) Add(ctx context.Context, projectType *models.Type) error {
	return r.db.WithContext(ctx).Create(projectType).Error
}

// Exists reports whether a type with the given id exists.
func (r *TypeRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Type{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
