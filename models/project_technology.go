package models

// ProjectTechnology is a row of the project/technology association table.
type ProjectTechnology struct {
	ProjectID    uint `json:"project_id" gorm:"primaryKey;autoIncrement:false"`
	TechnologyID uint `json:"technology_id" gorm:"primaryKey;autoIncrement:false;index"`
}

func (ProjectTechnology) TableName() string {
	return "project_technology"
}
