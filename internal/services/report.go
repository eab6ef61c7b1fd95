package services

import (
	"context"
	"time"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type reportWorkspace interface {
	CreateReminder(ctx context.Context, token string, req dto.ReminderRequest) error
	ListSpaces(ctx context.Context, token string) ([]models.ChatSpace, error)
	SendReportCard(ctx context.Context, token string, report dto.ChatReport) error
}

// credentialSource hands out the session credential collaborator calls run
// under.
type credentialSource interface {
	Credential() (string, bool)
}

type reportService struct {
	workspace reportWorkspace
	session   credentialSource
}

func NewReportService(workspace reportWorkspace, session credentialSource) *reportService {
	return &reportService{
		workspace: workspace,
		session:   session,
	}
}

// CreateReminder puts a maturity reminder on the user's calendar. A missing
// scope comes back as its own error so the UI can prompt a re-auth.
func (s *reportService) CreateReminder(ctx context.Context, req dto.ReminderRequest) error {
	if req.BankName == "" {
		return errs.NewValidationError("bank name is required")
	}
	if _, err := time.Parse("2006-01-02", req.ExpiryDate); err != nil {
		return errs.NewValidationError("expiry date must be YYYY-MM-DD")
	}

	token, ok := s.session.Credential()
	if !ok {
		return errs.NewSessionExpiredError()
	}

	if err := s.workspace.CreateReminder(ctx, token, req); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info("maturity reminder created", "bank", req.BankName, "date", req.ExpiryDate)
	return nil
}

func (s *reportService) ListSpaces(ctx context.Context) ([]models.ChatSpace, error) {
	token, ok := s.session.Credential()
	if !ok {
		return nil, errs.NewSessionExpiredError()
	}
	return s.workspace.ListSpaces(ctx, token)
}

func (s *reportService) SendReport(ctx context.Context, report dto.ChatReport) error {
	if report.SpaceName == "" {
		return errs.NewValidationError("chat space is required")
	}

	token, ok := s.session.Credential()
	if !ok {
		return errs.NewSessionExpiredError()
	}

	if err := s.workspace.SendReportCard(ctx, token, report); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info("report card sent", "space", report.SpaceName)
	return nil
}
