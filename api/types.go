package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	registryHandler registryHandler
	healthHandler   healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string              `json:"error" example:"the given data was invalid"`
	Status  string              `json:"status" example:"error"`
	Field   string              `json:"field,omitempty" example:"title"`
	Details string              `json:"details,omitempty" example:"The title has already been taken."`
	Fields  map[string][]string `json:"fields,omitempty"`
	Cause   string              `json:"cause,omitempty" example:"Underlying error cause"`
}

// MessageResponse is returned by mutations that leave nothing to show.
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"project moved to trash"`
}
