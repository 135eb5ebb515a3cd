package controllers

import (
	"net/http"

	"confregistry/internal/delivery/http/helpers"
)

// HealthController reports process liveness.
type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} helpers.OKResponse
// @Router /api/health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, helpers.OKResponse{OK: true})
}
