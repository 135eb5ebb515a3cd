package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confregistry/internal/delivery/http/helpers"
	"confregistry/internal/domain"
)

// AdminController handles the password-protected back-office endpoints.
// Authentication happens in middleware before any of these run.
type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// MarkPaidRequest is the request body for POST /api/admin/mark-paid/{id}.
type MarkPaidRequest struct {
	Paid *bool `json:"paid"`
}

// Validate implements helpers.Validator.
func (m MarkPaidRequest) Validate() []string {
	if m.Paid == nil {
		return []string{"paid is required"}
	}
	return nil
}

// MarkPaidResponse is the success body for POST /api/admin/mark-paid/{id}.
type MarkPaidResponse struct {
	OK           bool                 `json:"ok"`
	Registration *domain.Registration `json:"registration"`
}

// ListRegistrations godoc
// @Summary List all registrations
// @Description Returns every registration newest first, each with derived paper and proof URLs. An optional q parameter filters by id, name, or paper id, case-insensitively.
// @Tags admin
// @Produce json
// @Param password query string true "Admin password"
// @Param q query string false "Search text"
// @Success 200 {array} domain.AdminRegistration
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/admin/registrations [get]
func (c *AdminController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, items)
}

// ExportCSV godoc
// @Summary Export all registrations as CSV
// @Description Streams every registration newest first as a CSV attachment. Every field is double-quoted.
// @Tags admin
// @Produce text/csv
// @Param password query string true "Admin password"
// @Success 200 {string} string "CSV body"
// @Failure 401 {object} helpers.ErrorResponse
// @Router /api/admin/export [get]
func (c *AdminController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=registrations.csv`)

	if err := c.Service.ExportCSV(r.Context(), w); err != nil {
		// Rows may already be on the wire, so the status cannot change.
		c.Logger.ErrorContext(r.Context(), "csv export failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// MarkPaid godoc
// @Summary Force the paid flag on a registration
// @Description Sets or clears paid. Marking paid stamps paid_at with the current time; unmarking clears paid_at but keeps any recorded transaction details.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param password query string true "Admin password"
// @Param body body MarkPaidRequest true "Target paid state"
// @Success 200 {object} MarkPaidResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/admin/mark-paid/{id} [post]
func (c *AdminController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing id")
		return
	}

	var req MarkPaidRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	reg, err := c.Service.MarkPaid(r.Context(), id, *req.Paid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, MarkPaidResponse{OK: true, Registration: reg})
}
