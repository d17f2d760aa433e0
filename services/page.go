package services

import "github.com/rpupo63/portfolio-admin-backend/models"

const (
	ActivePageSize  = 15
	TrashedPageSize = 10
)

// Page is one slice of a project listing. Page numbers start at 1.
type Page struct {
	Items    []*models.Project `json:"data"`
	Page     int               `json:"current_page"`
	PageSize int               `json:"per_page"`
	Total    int64             `json:"total"`
	LastPage int               `json:"last_page"`
}

func lastPage(total int64, pageSize int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
