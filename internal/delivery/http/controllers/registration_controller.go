package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confregistry/internal/delivery/http/helpers"
	"confregistry/internal/domain"
)

// maxMultipartMemory bounds how much of a multipart body stays in memory
// while parsing; larger parts spill to temp files.
const maxMultipartMemory = 32 << 20

// RegistrationController handles the public registration endpoints.
type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListFees godoc
// @Summary Get the registration fee table
// @Description Returns the full fee schedule keyed by category then region. Each leaf holds the currency and amount charged for that selection.
// @Tags fees
// @Produce json
// @Success 200 {object} map[string]map[string]domain.Fee
// @Router /api/fees [get]
func (c *RegistrationController) ListFees(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, domain.FeeTable())
}

// CreateRegistration godoc
// @Summary Register a participant
// @Description Creates a registration from multipart form fields. The fee is resolved from the category/region table and frozen on the record. The optional "paper" part must be a PDF.
// @Tags registrations
// @Accept mpfd
// @Produce json
// @Param category formData string true "Fee category"
// @Param region formData string true "Fee region"
// @Param paperId formData string false "Submitted paper id"
// @Param name formData string true "Full name"
// @Param organization formData string false "Affiliation"
// @Param email formData string true "Contact email"
// @Param mobile formData string true "Mobile number"
// @Param paper formData file false "Paper PDF"
// @Success 200 {object} domain.RegisterResult
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 413 {object} helpers.ErrorResponse
// @Failure 415 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/register [post]
func (c *RegistrationController) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	input := domain.RegisterInput{
		Category:     r.FormValue("category"),
		Region:       r.FormValue("region"),
		PaperID:      r.FormValue("paperId"),
		Name:         r.FormValue("name"),
		Organization: r.FormValue("organization"),
		Email:        r.FormValue("email"),
		Mobile:       r.FormValue("mobile"),
	}

	var paper *domain.FileUpload
	file, header, err := r.FormFile("paper")
	switch {
	case err == nil:
		defer file.Close()
		paper = &domain.FileUpload{
			Reader:      file,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
		}
	case errors.Is(err, http.ErrMissingFile):
		// the paper is optional
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid paper upload")
		return
	}

	res, err := c.Service.Register(r.Context(), input, paper)
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) || errors.Is(err, domain.ErrInvalidSelection) {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrPayloadTooLarge) {
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		if errors.Is(err, domain.ErrUnsupportedMedia) {
			helpers.WriteJSONError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, res)
}

// GetRegistration godoc
// @Summary Get one registration
// @Description Returns the full registration record for the given id. Also served under /api/participant/{id}.
// @Tags registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} domain.Registration
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/registrations/{id} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing id")
		return
	}

	reg, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, reg)
}
