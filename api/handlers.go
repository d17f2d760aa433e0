package api

import (
	"time"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/rpupo63/portfolio-admin-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, backend storage.Backend, maxBodyBytes int64, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(services.NewProjectService(database, backend), maxBodyBytes),
		registryHandler: newRegistryHandler(services.NewRegistryService(database), maxBodyBytes),
		healthHandler:   newHealthHandler(database, startupTime),
	}
}
