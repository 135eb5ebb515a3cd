package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"confregistry/internal/delivery/http/helpers"
	"confregistry/internal/domain"
)

// PaymentController handles payment initiation and confirmation.
type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{
		Logger:  logger,
		Service: svc,
	}
}

// ConfirmPaymentRequest is the JSON request body for POST /api/confirm-payment/{id}.
// The same fields may instead arrive as multipart form values alongside a
// "screenshot" file part.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transactionId"`
	Method        string `json:"method"`
	Email         string `json:"email"`
}

// ConfirmPaymentResponse is the success body for POST /api/confirm-payment/{id}.
type ConfirmPaymentResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// CreatePayment godoc
// @Summary Start a payment for a registration
// @Description Returns a checkout URL carrying a signed short-lived payment reference, plus the amount and currency frozen on the record. No gateway call is made.
// @Tags payments
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} domain.PaymentIntent
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/create-payment/{id} [post]
func (c *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing id")
		return
	}

	intent, err := c.Service.CreatePayment(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, intent)
}

// ConfirmPayment godoc
// @Summary Confirm a payment
// @Description Marks the registration paid. Accepts either a JSON body with transactionId, method, and email, or a multipart form with the same fields plus a "screenshot" proof file. The submitted email must match the registration's email (case-insensitive).
// @Tags payments
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "Registration ID"
// @Param body body ConfirmPaymentRequest false "Transaction details (JSON variant)"
// @Success 200 {object} ConfirmPaymentResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 413 {object} helpers.ErrorResponse
// @Failure 415 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/confirm-payment/{id} [post]
func (c *PaymentController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing id")
		return
	}

	var input domain.ConfirmInput
	var proof *domain.FileUpload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		input = domain.ConfirmInput{
			TransactionID: r.FormValue("transactionId"),
			Method:        r.FormValue("method"),
			Email:         r.FormValue("email"),
		}
		file, header, err := r.FormFile("screenshot")
		switch {
		case err == nil:
			defer file.Close()
			proof = &domain.FileUpload{
				Reader:      file,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
			}
		case errors.Is(err, http.ErrMissingFile):
			// whether a proof is required is decided by the service
		default:
			helpers.WriteJSONError(w, http.StatusBadRequest, "invalid screenshot upload")
			return
		}
	} else {
		var req ConfirmPaymentRequest
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
		input = domain.ConfirmInput{
			TransactionID: req.TransactionID,
			Method:        req.Method,
			Email:         req.Email,
		}
	}

	reg, err := c.Service.ConfirmPayment(r.Context(), id, input, proof)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "registration not found")
			return
		}
		if errors.Is(err, domain.ErrEmailMismatch) || errors.Is(err, domain.ErrMissingField) {
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

	helpers.WriteJSON(w, http.StatusOK, ConfirmPaymentResponse{OK: true, ID: reg.ID})
}
