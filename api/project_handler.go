package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectService *services.ProjectService
	maxBodyBytes   int64
}

func newProjectHandler(projectService *services.ProjectService, maxBodyBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectService: projectService,
		maxBodyBytes:   maxBodyBytes,
	}
}

func projectLocation(slug string) string {
	return "/projects/" + url.PathEscape(slug)
}

// pageParam reads ?page=, falling back to 1 for anything unparsable.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// listProjects lists active or trashed projects
// @Summary List projects
// @Description Paginated projects ordered by id. The trashed variant lists only soft-deleted projects.
// @Tags Projects
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} services.Page "One page of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
// @Router /projects/trashed [get]
func (h projectHandler) listProjects(trashed bool, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.projectService.List(r.Context(), trashed, pageParam(r), pageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getProject retrieves an active project by id or slug
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param project path string true "Project id or slug"
// @Success 200 {object} models.Project "Project with its type and technologies"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{project} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectService.Find(r.Context(), chi.URLParam(r, "project"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// formOptions lists the types and technologies a project can reference
// @Summary Project form options
// @Tags Projects
// @Produce json
// @Success 200 {object} services.FormOptions
// @Router /projects/options [get]
func (h projectHandler) formOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := h.projectService.FormOptions(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, options)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Success 303 {object} models.Project "Created project; Location points at it"
// @Failure 422 {object} ErrorResponse "Unprocessable Entity - Validation failed"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Image could not be stored"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProjectInput(w, r, h.maxBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectService.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.Redirect(w, projectLocation(project.Slug), project)
	}
}

// updateProject updates an active project
// @Summary Update project
// @Tags Projects
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param project path string true "Project id or slug"
// @Success 303 {object} models.Project "Updated project; Location points at it"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found or trashed"
// @Failure 422 {object} ErrorResponse "Unprocessable Entity - Validation failed"
// @Router /projects/{project} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.projectService.Find(r.Context(), chi.URLParam(r, "project"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := decodeProjectInput(w, r, h.maxBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectService.Update(r.Context(), existing.ID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.Redirect(w, projectLocation(project.Slug), project)
	}
}

// deleteProject moves a project to the trash
// @Summary Trash project
// @Tags Projects
// @Produce json
// @Param project path string true "Project id or slug"
// @Success 303 {object} MessageResponse "Location points at the project list"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{project} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectService.Find(r.Context(), chi.URLParam(r, "project"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectService.SoftDelete(r.Context(), project.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.Redirect(w, "/projects", MessageResponse{Status: "success", Message: "project moved to trash"})
	}
}

// restoreProject brings a trashed project back
// @Summary Restore project
// @Tags Projects
// @Produce json
// @Param project path string true "Trashed project id or slug"
// @Success 303 {object} models.Project "Restored project; Location points at it"
// @Failure 404 {object} ErrorResponse "Not Found - No trashed project matches"
// @Router /projects/{project}/restore [patch]
func (h projectHandler) restoreProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectService.Restore(r.Context(), chi.URLParam(r, "project"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.Redirect(w, projectLocation(project.Slug), project)
	}
}

// obliterateProject permanently deletes a trashed project
// @Summary Obliterate project
// @Tags Projects
// @Produce json
// @Param project path string true "Trashed project id or slug"
// @Success 303 {object} MessageResponse "Location points at the project list"
// @Failure 404 {object} ErrorResponse "Not Found - No trashed project matches"
// @Router /projects/{project}/obliterate [delete]
func (h projectHandler) obliterateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := chi.URLParam(r, "project")
		if ref == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project"))
			return
		}

		if err := h.projectService.Obliterate(r.Context(), ref); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.Redirect(w, "/projects", MessageResponse{Status: "success", Message: "project permanently deleted"})
	}
}
