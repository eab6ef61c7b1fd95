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

type ratesService interface {
	FetchPublicRates(ctx context.Context) (dto.PublicRatesResult, error)
}

type suggestService interface {
	Apply(ctx context.Context, suggestions []models.RateSuggestion) ([]models.Bank, error)
}

type discountService interface {
	FetchDailyDiscounts(ctx context.Context) (dto.DiscountsResult, error)
}

type ratesHandlers struct {
	ResponseHandler response.ResponseHandler
	RatesSvc        ratesService
	SuggestSvc      suggestService
	DiscountSvc     discountService
}

func NewRatesHandlers(deps *Deps) *ratesHandlers {
	return &ratesHandlers{
		ResponseHandler: deps.ResponseHandler,
		RatesSvc:        deps.RatesSvc,
		SuggestSvc:      deps.SuggestSvc,
		DiscountSvc:     deps.DiscountSvc,
	}
}

func (h *ratesHandlers) RatesRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/fetch", h.FetchPublicRates)
	r.Post("/apply", h.ApplySuggestions)
	return r
}

func (h *ratesHandlers) DiscountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.FetchDailyDiscounts)
	return r
}

func (h *ratesHandlers) FetchPublicRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.RatesSvc.FetchPublicRates(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
}

func (h *ratesHandlers) ApplySuggestions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rates []models.RateSuggestion `json:"rates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	banks, err := h.SuggestSvc.Apply(r.Context(), body.Rates)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, banks)
}

func (h *ratesHandlers) FetchDailyDiscounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.DiscountSvc.FetchDailyDiscounts(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
}
