package database

import (
	"context"
	"sort"

	"github.com/rpupo63/portfolio-admin-backend/models"
	"gorm.io/gorm"
)

type ProjectTechnologyRepo struct {
	db *gorm.DB
}

func NewProjectTechnologyRepo(db *gorm.DB) *ProjectTechnologyRepo {
	return &ProjectTechnologyRepo{db}
}

// TechnologyIDs returns the technology ids linked to a project, ascending.
func (r *ProjectTechnologyRepo) TechnologyIDs(ctx context.Context, projectID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ProjectTechnology{}).
		Where("project_id = ?", projectID).
		Order("technology_id").
		Pluck("technology_id", &ids).Error
	return ids, err
}

// SyncResult lists the ids added and removed by Sync.
type SyncResult struct {
	Attached []uint
	Detached []uint
}

// Sync makes the project's technology set exactly ids: links missing from ids
// are removed, new ones are added, and duplicates in ids are ignored.
func (r *ProjectTechnologyRepo) Sync(ctx context.Context, projectID uint, ids []uint) (SyncResult, error) {
	current, err := r.TechnologyIDs(ctx, projectID)
	if err != nil {
		return SyncResult{}, err
	}

	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	existing := make(map[uint]struct{}, len(current))
	for _, id := range current {
		existing[id] = struct{}{}
	}

	var result SyncResult
	for _, id := range current {
		if _, ok := wanted[id]; !ok {
			result.Detached = append(result.Detached, id)
		}
	}
	for id := range wanted {
		if _, ok := existing[id]; !ok {
			result.Attached = append(result.Attached, id)
		}
	}
	sort.Slice(result.Attached, func(i, j int) bool { return result.Attached[i] < result.Attached[j] })

	if len(result.Detached) > 0 {
		err := r.db.WithContext(ctx).
			Where("project_id = ? AND technology_id IN ?", projectID, result.Detached).
			Delete(&models.ProjectTechnology{}).Error
		if err != nil {
			return SyncResult{}, err
		}
	}

	if len(result.Attached) > 0 {
		rows := make([]models.ProjectTechnology, 0, len(result.Attached))
		for _, id := range result.Attached {
			rows = append(rows, models.ProjectTechnology{ProjectID: projectID, TechnologyID: id})
		}
		if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
			return SyncResult{}, err
		}
	}

	return result, nil
}

// Detach removes every technology link of a project.
func (r *ProjectTechnologyRepo) Detach(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.ProjectTechnology{}).Error
}
