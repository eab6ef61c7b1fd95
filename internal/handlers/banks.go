package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/internal/response"
	"github.com/Fersca/YieldMaster/internal/services"
)

type bankService interface {
	ListBanks(ctx context.Context) services.BankListing
	AddBank(ctx context.Context, bank models.Bank) (models.Bank, error)
	EditBank(ctx context.Context, id string, patch models.Bank) error
	RemoveBank(ctx context.Context, id string) error
	ToggleSort(ctx context.Context, key string) (models.SortSpec, error)
	SetSelection(ctx context.Context, sel models.Selection) models.Selection
}

type bankHandlers struct {
	ResponseHandler response.ResponseHandler
	BankSvc         bankService
}

func NewBankHandlers(deps *Deps) *bankHandlers {
	return &bankHandlers{
		ResponseHandler: deps.ResponseHandler,
		BankSvc:         deps.BankSvc,
	}
}

func (h *bankHandlers) BankRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListBanks)
	r.Post("/", h.AddBank)
	r.Put("/selection", h.SetSelection)
	r.Put("/sort", h.ToggleSort)
	r.Put("/{bankId}", h.EditBank)
	r.Delete("/{bankId}", h.RemoveBank)
	return r
}

type bankBody struct {
	Name      string  `json:"name"`
	RatePesos float64 `json:"ratePesos"`
	RateUsd   float64 `json:"rateUsd"`
}

func (h *bankHandlers) ListBanks(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.BankSvc.ListBanks(r.Context()))
}

func (h *bankHandlers) AddBank(w http.ResponseWriter, r *http.Request) {
	var body bankBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	created, err := h.BankSvc.AddBank(r.Context(), models.Bank{
		Name:      body.Name,
		RatePesos: body.RatePesos,
		RateUsd:   body.RateUsd,
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusCreated, created)
}

func (h *bankHandlers) EditBank(w http.ResponseWriter, r *http.Request) {
	var body bankBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	bankID := chi.URLParam(r, "bankId")
	err := h.BankSvc.EditBank(r.Context(), bankID, models.Bank{
		Name:      body.Name,
		RatePesos: body.RatePesos,
		RateUsd:   body.RateUsd,
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, nil)
}

func (h *bankHandlers) RemoveBank(w http.ResponseWriter, r *http.Request) {
	bankID := chi.URLParam(r, "bankId")

	if err := h.BankSvc.RemoveBank(r.Context(), bankID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, nil)
}

func (h *bankHandlers) ToggleSort(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	spec, err := h.BankSvc.ToggleSort(r.Context(), body.Key)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, spec)
}

func (h *bankHandlers) SetSelection(w http.ResponseWriter, r *http.Request) {
	var body models.Selection
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.BankSvc.SetSelection(r.Context(), body))
}
