package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

// setupRoutes registers every endpoint. Authentication is left to whatever
// sits in front of this service.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.health())

	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects(false, services.ActivePageSize))
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/trashed", handlers.projectHandler.listProjects(true, services.TrashedPageSize))
			r.Get("/options", handlers.projectHandler.formOptions())

			r.Route("/{project}", func(r chi.Router) {
				r.Get("/", handlers.projectHandler.getProject())
				r.Put("/", handlers.projectHandler.updateProject())
				r.Delete("/", handlers.projectHandler.deleteProject())
				r.Patch("/restore", handlers.projectHandler.restoreProject())
				r.Delete("/obliterate", handlers.projectHandler.obliterateProject())
			})
		})

		r.Get("/technologies", handlers.registryHandler.listTechnologies())
		r.Post("/technologies", handlers.registryHandler.createTechnology())
		r.Get("/types", handlers.registryHandler.listTypes())
		r.Post("/types", handlers.registryHandler.createType())
	})
}
