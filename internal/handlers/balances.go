package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/internal/response"
)

type balanceService interface {
	GetBalances(ctx context.Context) models.Balances
	SetManual(ctx context.Context, pesos, usd float64) models.Balances
}

type balanceHandlers struct {
	ResponseHandler response.ResponseHandler
	BalanceSvc      balanceService
}

func NewBalanceHandlers(deps *Deps) *balanceHandlers {
	return &balanceHandlers{
		ResponseHandler: deps.ResponseHandler,
		BalanceSvc:      deps.BalanceSvc,
	}
}

func (h *balanceHandlers) BalanceRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetBalances)
	r.Put("/", h.SetBalances)
	return r
}

func (h *balanceHandlers) GetBalances(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.BalanceSvc.GetBalances(r.Context()))
}

func (h *balanceHandlers) SetBalances(w http.ResponseWriter, r *http.Request) {
	var body models.Balances
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.BalanceSvc.SetManual(r.Context(), body.Pesos, body.Usd))
}
