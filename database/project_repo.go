package database

import (
	"context"
	"errors"
	"strconv"

	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Type").
		Preload("Technologies", func(db *gorm.DB) *gorm.DB {
			return db.Order("technologies.id")
		})
}

// whereRef matches a numeric id or, for anything else, a slug.
func whereRef(db *gorm.DB, ref string) *gorm.DB {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return db.Where("projects.id = ?", id)
	}
	return db.Where("projects.slug = ?", ref)
}

// first returns (nil, nil) when nothing matches.
func first(db *gorm.DB) (*models.Project, error) {
	var project models.Project
	err := db.First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActive returns a non-trashed project by id, or nil when none exists.
func (r *ProjectRepo) FindActive(ctx context.Context, id uint) (*models.Project, error) {
	return first(r.withRelations(ctx).Where("projects.id = ?", id))
}

// FindActiveByRef resolves an id or slug among non-trashed projects.
func (r *ProjectRepo) FindActiveByRef(ctx context.Context, ref string) (*models.Project, error) {
	return first(whereRef(r.withRelations(ctx), ref))
}

// FindTrashed resolves an id or slug among soft-deleted projects only.
func (r *ProjectRepo) FindTrashed(ctx context.Context, ref string) (*models.Project, error) {
	return first(whereRef(r.withRelations(ctx).Unscoped().Where("projects.deleted_at IS NOT NULL"), ref))
}

// FindAny looks a project up by id regardless of its deletion marker.
func (r *ProjectRepo) FindAny(ctx context.Context, id uint) (*models.Project, error) {
	return first(r.withRelations(ctx).Unscoped().Where("projects.id = ?", id))
}

// Page returns one page of active or trashed projects in id order along with the total count.
func (r *ProjectRepo) Page(ctx context.Context, trashed bool, offset, limit int) ([]*models.Project, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if trashed {
			return db.Unscoped().Where("projects.deleted_at IS NOT NULL")
		}
		return db
	}

	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&models.Project{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []*models.Project{}
	if int64(offset) >= total {
		return projects, total, nil
	}

	err := scope(r.withRelations(ctx)).
		Order("projects.id").
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	return projects, total, err
}

// TitleTaken reports whether an active project other than exceptID uses title.
func (r *ProjectRepo) TitleTaken(ctx context.Context, title string, exceptID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).Where("title = ?", title)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Add inserts a new project without touching its associations.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// UpdateSlug persists a recomputed slug.
func (r *ProjectRepo) UpdateSlug(ctx context.Context, id uint, slug string) error {
	return r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("slug", slug).Error
}

// Update writes the given columns of an active project.
func (r *ProjectRepo) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete sets the deletion marker of an active project.
func (r *ProjectRepo) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore clears the deletion marker of a trashed project.
func (r *ProjectRepo) Restore(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ForceDelete permanently removes the row.
func (r *ProjectRepo) ForceDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Project{}, id).Error
}
