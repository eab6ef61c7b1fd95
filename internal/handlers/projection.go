package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/internal/response"
)

type projectionService interface {
	Project(ctx context.Context, currency models.Currency) (dto.ProjectionResult, error)
}

type projectionHandlers struct {
	ResponseHandler response.ResponseHandler
	ProjectionSvc   projectionService
}

func NewProjectionHandlers(deps *Deps) *projectionHandlers {
	return &projectionHandlers{
		ResponseHandler: deps.ResponseHandler,
		ProjectionSvc:   deps.ProjectionSvc,
	}
}

func (h *projectionHandlers) ProjectionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Project)
	return r
}

func (h *projectionHandlers) Project(w http.ResponseWriter, r *http.Request) {
	currency := models.CurrencyARS
	switch r.URL.Query().Get("currency") {
	case "", string(models.CurrencyARS):
	case string(models.CurrencyUSD):
		currency = models.CurrencyUSD
	default:
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("currency must be ARS or USD"))
		return
	}

	result, err := h.ProjectionSvc.Project(r.Context(), currency)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
}
