package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type registryHandler struct {
	responder       Responder
	logger          zerolog.Logger
	registryService *services.RegistryService
	maxBodyBytes    int64
}

func newRegistryHandler(registryService *services.RegistryService, maxBodyBytes int64) registryHandler {
	logger := log.With().Str("handlerName", "registryHandler").Logger()

	return registryHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		registryService: registryService,
		maxBodyBytes:    maxBodyBytes,
	}
}

// @Summary List technologies
// @Tags Technologies
// @Produce json
// @Success 200 {array} models.Technology
// @Router /technologies [get]
func (h registryHandler) listTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologies, err := h.registryService.ListTechnologies(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, technologies)
	}
}

// @Summary Create technology
// @Tags Technologies
// @Accept json
// @Produce json
// @Param technology body services.NameInput true "Technology name"
// @Success 201 {object} models.Technology
// @Failure 422 {object} ErrorResponse
// @Router /technologies [post]
func (h registryHandler) createTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeNameInput(w, r, h.maxBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.registryService.CreateTechnology(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("technologyID", technology.ID).Msg("technology created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, technology)
	}
}

// @Summary List types
// @Tags Types
// @Produce json
// @Success 200 {array} models.Type
// @Router /types [get]
func (h registryHandler) listTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := h.registryService.ListTypes(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, types)
	}
}

// @Summary Create type
// @Tags Types
// @Accept json
// @Produce json
// @Param type body services.NameInput true "Type name"
// @Success 201 {object} models.Type
// @Failure 422 {object} ErrorResponse
// @Router /types [post]
func (h registryHandler) createType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeNameInput(w, r, h.maxBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectType, err := h.registryService.CreateType(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("typeID", projectType.ID).Msg("type created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, projectType)
	}
}
