package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a portfolio entry. Slug is always derived from ID and Title.
type Project struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"size:255;not null;uniqueIndex:idx_projects_title_active,where:deleted_at IS NULL"`
	Slug         string         `json:"slug" gorm:"size:255;not null;index"`
	URL          string         `json:"url" gorm:"type:text;not null"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	Image        *string        `json:"image" gorm:"size:255"`
	TypeID       uint           `json:"type_id" gorm:"not null;index"`
	Type         *Type          `json:"type,omitempty" gorm:"foreignKey:TypeID;references:ID"`
	Technologies []Technology   `json:"technologies" gorm:"many2many:project_technology"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Trashed reports whether the project carries a deletion marker.
func (p Project) Trashed() bool {
	return p.DeletedAt.Valid
}

// TechnologyIDs returns the ids of the loaded technologies in load order.
func (p Project) TechnologyIDs() []uint {
	ids := make([]uint, 0, len(p.Technologies))
	for _, technology := range p.Technologies {
		ids = append(ids, technology.ID)
	}
	return ids
}
