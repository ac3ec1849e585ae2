package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/pkg/grpc/gateway"
	"github.com/hb-chen/safeskill/pkg/logger"
)

const maxRequestBody = 1 << 20

// Handlers contains HTTP handlers
type Handlers struct {
	router *skill.Router
	logger logger.Logger
}

// NewHandlers creates new HTTP handlers
func NewHandlers(router *skill.Router, log logger.Logger) *Handlers {
	return &Handlers{
		router: router,
		logger: log,
	}
}

// ExecuteRequest is the body of an execute call. A missing input is an
// absent value.
type ExecuteRequest struct {
	Input json.RawMessage `json:"input,omitempty"`
}

// SkillsResponse lists skill descriptors
type SkillsResponse struct {
	Skills []skill.Descriptor `json:"skills"`
	Total  int                `json:"total"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register mounts the API on the gateway
func (h *Handlers) Register(gw *gateway.Gateway) error {
	v1 := gw.Group("/api/v1")
	v1.GET("/skills", h.ListSkills)
	v1.GET("/skills/{name}", h.GetSkill)
	v1.POST("/skills/{name}/execute", h.ExecuteSkill)

	return gw.Mux().HandlePath(http.MethodGet, "/health", h.HealthCheck)
}

// ListSkills returns the descriptors of registered skills, optionally
// filtered by a glob on the name (?match=)
func (h *Handlers) ListSkills(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	skills, err := h.router.GetRegistry().Match(r.URL.Query().Get("match"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	resp := SkillsResponse{
		Skills: make([]skill.Descriptor, 0, len(skills)),
	}
	for _, s := range skills {
		resp.Skills = append(resp.Skills, s.Describe())
	}
	resp.Total = len(resp.Skills)

	h.writeJSON(w, http.StatusOK, resp)
}

// GetSkill returns one skill descriptor
func (h *Handlers) GetSkill(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	s, err := h.router.GetRegistry().Get(pathParams["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s.Describe())
}

// ExecuteSkill invokes a skill and returns the settled invocation
func (h *Handlers) ExecuteSkill(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	name := pathParams["name"]

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		h.logger.Errorf("Failed to read request: %v", err)
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var req ExecuteRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.logger.Warnf("Failed to decode request: %v", err)
			h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	input, err := skill.DecodeInput(req.Input)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
		return
	}

	h.logger.Debugf("Executing skill %s", name)
	inv, err := h.router.Execute(r.Context(), name, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, inv)
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"skills":    h.router.GetRegistry().Count(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, skill.ErrSkillNotFound):
		status = http.StatusNotFound
	case errors.Is(err, skill.ErrSkillDisabled):
		status = http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}
	if status >= http.StatusInternalServerError {
		h.logger.Errorf("Request failed: %v", err)
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}
