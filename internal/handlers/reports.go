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

type reportService interface {
	CreateReminder(ctx context.Context, req dto.ReminderRequest) error
	ListSpaces(ctx context.Context) ([]models.ChatSpace, error)
	SendReport(ctx context.Context, report dto.ChatReport) error
}

type inboxService interface {
	FetchBankEmails(ctx context.Context) ([]models.BankEmail, error)
}

type reportHandlers struct {
	ResponseHandler response.ResponseHandler
	ReportSvc       reportService
	InboxSvc        inboxService
}

func NewReportHandlers(deps *Deps) *reportHandlers {
	return &reportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReportSvc:       deps.ReportSvc,
		InboxSvc:        deps.InboxSvc,
	}
}

func (h *reportHandlers) ReportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/reminder", h.CreateReminder)
	r.Get("/spaces", h.ListSpaces)
	r.Post("/chat", h.SendReport)
	return r
}

func (h *reportHandlers) InboxRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.FetchBankEmails)
	return r
}

func (h *reportHandlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var body dto.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if err := h.ReportSvc.CreateReminder(r.Context(), body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusCreated, nil)
}

func (h *reportHandlers) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.ReportSvc.ListSpaces(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, spaces)
}

func (h *reportHandlers) SendReport(w http.ResponseWriter, r *http.Request) {
	var body dto.ChatReport
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if err := h.ReportSvc.SendReport(r.Context(), body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, nil)
}

func (h *reportHandlers) FetchBankEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.InboxSvc.FetchBankEmails(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, emails)
}
