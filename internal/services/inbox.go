package services

import (
	"context"

	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type inboxWorkspace interface {
	FetchBankEmails(ctx context.Context, token string, bankNames []string) ([]models.BankEmail, error)
}

type inboxService struct {
	workspace inboxWorkspace
	registry  discountRegistry
	session   credentialSource
}

func NewInboxService(workspace inboxWorkspace, registry discountRegistry, session credentialSource) *inboxService {
	return &inboxService{
		workspace: workspace,
		registry:  registry,
		session:   session,
	}
}

// FetchBankEmails searches the mailbox for mail from the registry's banks.
func (s *inboxService) FetchBankEmails(ctx context.Context) ([]models.BankEmail, error) {
	token, ok := s.session.Credential()
	if !ok {
		return nil, errs.NewSessionExpiredError()
	}

	banks := s.registry.List()
	names := make([]string, 0, len(banks))
	for _, b := range banks {
		names = append(names, b.Name)
	}

	emails, err := s.workspace.FetchBankEmails(ctx, token, names)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("bank inbox fetched", "count", len(emails))
	return emails, nil
}
