package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/response"
)

type syncService interface {
	Refresh(ctx context.Context) error
	Status() dto.SyncStatus
}

type syncHandlers struct {
	ResponseHandler response.ResponseHandler
	SyncSvc         syncService
}

func NewSyncHandlers(deps *Deps) *syncHandlers {
	return &syncHandlers{
		ResponseHandler: deps.ResponseHandler,
		SyncSvc:         deps.SyncSvc,
	}
}

func (h *syncHandlers) SyncRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/status", h.Status)
	r.Post("/refresh", h.Refresh)
	return r
}

func (h *syncHandlers) Status(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.SyncSvc.Status())
}

func (h *syncHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.SyncSvc.Refresh(r.Context()); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.SyncSvc.Status())
}
