package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type fakeWorkspace struct {
	reminders []dto.ReminderRequest
	spaces    []models.ChatSpace
	reports   []dto.ChatReport
	emails    []models.BankEmail
	gotNames  []string
	err       error
}

func (f *fakeWorkspace) CreateReminder(ctx context.Context, token string, req dto.ReminderRequest) error {
	f.reminders = append(f.reminders, req)
	return f.err
}

func (f *fakeWorkspace) ListSpaces(ctx context.Context, token string) ([]models.ChatSpace, error) {
	return f.spaces, f.err
}

func (f *fakeWorkspace) SendReportCard(ctx context.Context, token string, report dto.ChatReport) error {
	f.reports = append(f.reports, report)
	return f.err
}

func (f *fakeWorkspace) FetchBankEmails(ctx context.Context, token string, bankNames []string) ([]models.BankEmail, error) {
	f.gotNames = bankNames
	return f.emails, f.err
}

type fakeCredential struct {
	token string
}

func (f *fakeCredential) Credential() (string, bool) {
	return f.token, f.token != ""
}

func TestCreateReminderValidatesInput(t *testing.T) {
	svc := NewReportService(&fakeWorkspace{}, &fakeCredential{token: "tok"})
	ctx := logger.ToContext(context.Background(), testLogger())

	err := svc.CreateReminder(ctx, dto.ReminderRequest{ExpiryDate: "2024-06-01"})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error for missing bank, got %v", err)
	}

	err = svc.CreateReminder(ctx, dto.ReminderRequest{BankName: "Galicia", ExpiryDate: "01/06/2024"})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestCreateReminderRequiresCredential(t *testing.T) {
	svc := NewReportService(&fakeWorkspace{}, &fakeCredential{})
	ctx := logger.ToContext(context.Background(), testLogger())

	err := svc.CreateReminder(ctx, dto.ReminderRequest{BankName: "Galicia", ExpiryDate: "2024-06-01"})
	var expired *errs.SessionExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("expected session expired, got %v", err)
	}
}

func TestCreateReminderForwardsRequest(t *testing.T) {
	workspace := &fakeWorkspace{}
	svc := NewReportService(workspace, &fakeCredential{token: "tok"})
	ctx := logger.ToContext(context.Background(), testLogger())

	req := dto.ReminderRequest{BankName: "Galicia", Amount: 100000, Currency: "ARS", ExpiryDate: "2024-06-01"}
	if err := svc.CreateReminder(ctx, req); err != nil {
		t.Fatalf("CreateReminder returned error: %v", err)
	}
	if len(workspace.reminders) != 1 || workspace.reminders[0].BankName != "Galicia" {
		t.Fatalf("unexpected reminders: %+v", workspace.reminders)
	}
}

func TestSendReportRequiresSpace(t *testing.T) {
	svc := NewReportService(&fakeWorkspace{}, &fakeCredential{token: "tok"})
	ctx := logger.ToContext(context.Background(), testLogger())

	err := svc.SendReport(ctx, dto.ChatReport{Title: "report"})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFetchBankEmailsUsesRegistryNames(t *testing.T) {
	workspace := &fakeWorkspace{emails: []models.BankEmail{{Subject: "Resumen"}}}
	registry := &suggestFakeRegistry{banks: []models.Bank{
		{Name: "Banco Nación"},
		{Name: "Galicia"},
	}}
	svc := NewInboxService(workspace, registry, &fakeCredential{token: "tok"})

	ctx := logger.ToContext(context.Background(), testLogger())
	emails, err := svc.FetchBankEmails(ctx)
	if err != nil {
		t.Fatalf("FetchBankEmails returned error: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("unexpected emails: %+v", emails)
	}
	if len(workspace.gotNames) != 2 || workspace.gotNames[0] != "Banco Nación" {
		t.Fatalf("unexpected names: %+v", workspace.gotNames)
	}
}

func TestFetchBankEmailsRequiresCredential(t *testing.T) {
	svc := NewInboxService(&fakeWorkspace{}, &suggestFakeRegistry{}, &fakeCredential{})

	ctx := logger.ToContext(context.Background(), testLogger())
	_, err := svc.FetchBankEmails(ctx)
	var expired *errs.SessionExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("expected session expired, got %v", err)
	}
}
