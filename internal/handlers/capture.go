package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/internal/response"
)

type captureService interface {
	Scan(ctx context.Context, imageBase64 string) (dto.CaptureScanResult, error)
	Confirm(ctx context.Context, amount float64) (models.Balances, error)
}

type captureHandlers struct {
	ResponseHandler response.ResponseHandler
	CaptureSvc      captureService
}

func NewCaptureHandlers(deps *Deps) *captureHandlers {
	return &captureHandlers{
		ResponseHandler: deps.ResponseHandler,
		CaptureSvc:      deps.CaptureSvc,
	}
}

func (h *captureHandlers) CaptureRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/scan", h.Scan)
	r.Post("/confirm", h.Confirm)
	return r
}

func (h *captureHandlers) Scan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result, err := h.CaptureSvc.Scan(r.Context(), body.Image)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
}

func (h *captureHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	balances, err := h.CaptureSvc.Confirm(r.Context(), body.Amount)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, balances)
}
