package services

import (
	"context"
	"errors"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type identityWorkspace interface {
	Userinfo(ctx context.Context, token string) (models.Profile, error)
}

type userSync interface {
	Activate(ctx context.Context, token string) error
	Deactivate(ctx context.Context)
	Status() dto.SyncStatus
}

type userSessionCache interface {
	Save(ctx context.Context, profile models.Profile, token, spreadsheetID string) error
	SetSpreadsheetID(ctx context.Context, spreadsheetID string) error
	Load(ctx context.Context) (*models.Session, string, error)
	Clear(ctx context.Context) error
}

type userService struct {
	workspace identityWorkspace
	sync      userSync
	sessions  userSessionCache
}

func NewUserService(workspace identityWorkspace, sync userSync, sessions userSessionCache) *userService {
	return &userService{
		workspace: workspace,
		sync:      sync,
		sessions:  sessions,
	}
}

// Login resolves the user profile, caches the session and activates sync.
// A transient sync failure still leaves the user signed in; only an expired
// credential aborts the login.
func (s *userService) Login(ctx context.Context, token string) (dto.LoginResult, error) {
	if token == "" {
		return dto.LoginResult{}, errs.NewValidationError("access token is required")
	}

	log := logger.FromContext(ctx)

	profile, err := s.workspace.Userinfo(ctx, token)
	if err != nil {
		return dto.LoginResult{}, err
	}

	if err := s.sessions.Save(ctx, profile, token, ""); err != nil {
		log.Warn("session cache save failed", "error", err)
	}

	if err := s.sync.Activate(ctx, token); err != nil {
		var expired *errs.SessionExpiredError
		if errors.As(err, &expired) {
			return dto.LoginResult{}, err
		}
		log.Warn("initial sync failed, session kept", "error", err)
	}

	status := s.sync.Status()
	if status.SpreadsheetID != "" {
		if err := s.sessions.SetSpreadsheetID(ctx, status.SpreadsheetID); err != nil {
			log.Warn("session cache update failed", "error", err)
		}
	}

	log.Info("user logged in", "email", profile.Email, "sync_state", status.State)
	return dto.LoginResult{Profile: profile, Sync: status}, nil
}

func (s *userService) Logout(ctx context.Context) {
	s.sync.Deactivate(ctx)
	logger.FromContext(ctx).Info("user logged out")
}

// Restore re-activates sync from the cached session on process start. Missing
// cache is not an error; an expired credential clears the cache so the next
// boot starts clean.
func (s *userService) Restore(ctx context.Context) (*models.Profile, error) {
	session, token, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	log := logger.FromContext(ctx)
	if err := s.sync.Activate(ctx, token); err != nil {
		var expired *errs.SessionExpiredError
		if errors.As(err, &expired) {
			log.Info("cached session expired, cleared")
			return nil, nil
		}
		log.Warn("session restored with sync error", "error", err)
	}

	log.Info("session restored", "email", session.Profile.Email)
	return &session.Profile, nil
}
