package models

import "time"

type Technology struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeedTechnologyNames is the initial technology list inserted on first run.
var SeedTechnologyNames = []string{
	"php", "vue", "laravel", "javascript",
	"HTML", "css", "SASS", "MySql", "Vite",
}
