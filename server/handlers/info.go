package handlers

import (
	"net/http"

	"github.com/teilomillet/tutor/config"
	"go.uber.org/zap"
)

// ModelsResponse lists the models a client may request.
type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}

// ModelsHandler serves GET /api/models from the startup configuration.
func ModelsHandler(cfg *config.Config, logger *zap.Logger) http.HandlerFunc {
	resp := ModelsResponse{
		Models:  cfg.ModelList(),
		Default: cfg.LLM.DefaultModel,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, resp)
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler reports that the process is serving. It does not probe the
// provider.
func HealthHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, HealthResponse{
			Status:  "ok",
			Message: "lesson tutor API operational",
		})
	}
}
