package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/middleware"
	"github.com/Fersca/YieldMaster/internal/response"
)

type userService interface {
	Login(ctx context.Context, token string) (dto.LoginResult, error)
	Logout(ctx context.Context)
}

type sessionHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         userService
	OAuthClientID   string
}

func NewSessionHandlers(deps *Deps) *sessionHandlers {
	return &sessionHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
		OAuthClientID:   deps.OAuthClientID,
	}
}

func (h *sessionHandlers) SessionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Login)
	r.Delete("/", h.Logout)
	r.Get("/config", h.Config)
	return r
}

func (h *sessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessToken string `json:"accessToken,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) { // allow empty body
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	token := middleware.Bearer(r.Context())
	if token == "" {
		token = body.AccessToken
	}

	result, err := h.UserSvc.Login(r.Context(), token)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
}

func (h *sessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.UserSvc.Logout(r.Context())
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, nil)
}

// Config hands the SPA the OAuth client id it signs in with.
func (h *sessionHandlers) Config(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, map[string]string{"clientId": h.OAuthClientID})
}
