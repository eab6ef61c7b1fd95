package workspaceclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/chat/v1"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	oauth2api "google.golang.org/api/oauth2/v2"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
)

// Adapter bundles the thin collaborator surfaces: identity profile lookup,
// calendar reminders, chat report cards, and the bank inbox search. Each call
// builds its service under the session credential.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

// Userinfo resolves the profile behind an access token.
func (a *Adapter) Userinfo(ctx context.Context, token string) (models.Profile, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(staticToken(token)))
	if err != nil {
		return models.Profile{}, errs.NewTransientIOError("userinfo", err.Error())
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return models.Profile{}, classify("userinfo", err)
	}
	return models.Profile{
		Name:       info.Name,
		Email:      info.Email,
		PictureURL: info.Picture,
	}, nil
}

// CreateReminder schedules an all-day maturity reminder on the primary
// calendar, with the popup/email lead times the original report uses.
func (a *Adapter) CreateReminder(ctx context.Context, token string, req dto.ReminderRequest) error {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(staticToken(token)))
	if err != nil {
		return errs.NewTransientIOError("calendar", err.Error())
	}

	symbol := "u$s"
	if req.Currency == string(models.CurrencyARS) {
		symbol = "$"
	}
	event := &calendar.Event{
		Summary: fmt.Sprintf("💰 Vencimiento YieldMaster: %s", req.BankName),
		Description: fmt.Sprintf(
			"Recordatorio de vencimiento de inversión.\n\nMonto estimado: %s %.2f\nBanco: %s\n\nGenerado por YieldMaster.",
			symbol, req.Amount, req.BankName),
		Start: &calendar.EventDateTime{Date: req.ExpiryDate, TimeZone: "America/Argentina/Buenos_Aires"},
		End:   &calendar.EventDateTime{Date: req.ExpiryDate, TimeZone: "America/Argentina/Buenos_Aires"},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 60},
				{Method: "email", Minutes: 1440},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if _, err := svc.Events.Insert("primary", event).Context(ctx).Do(); err != nil {
		return classify("calendar", err)
	}
	return nil
}

// ListSpaces returns the chat spaces the report card can go to.
func (a *Adapter) ListSpaces(ctx context.Context, token string) ([]models.ChatSpace, error) {
	svc, err := chat.NewService(ctx, option.WithTokenSource(staticToken(token)))
	if err != nil {
		return nil, errs.NewTransientIOError("chat", err.Error())
	}

	resp, err := svc.Spaces.List().Context(ctx).Do()
	if err != nil {
		return nil, classify("chat", err)
	}

	spaces := make([]models.ChatSpace, 0, len(resp.Spaces))
	for _, sp := range resp.Spaces {
		spaces = append(spaces, models.ChatSpace{
			Name:        sp.Name,
			DisplayName: sp.DisplayName,
		})
	}
	return spaces, nil
}

// SendReportCard posts the structured yield report as a cardsV2 message.
func (a *Adapter) SendReportCard(ctx context.Context, token string, report dto.ChatReport) error {
	svc, err := chat.NewService(ctx, option.WithTokenSource(staticToken(token)))
	if err != nil {
		return errs.NewTransientIOError("chat", err.Error())
	}

	widgets := make([]*chat.GoogleAppsCardV1Widget, 0, len(report.Details))
	for _, d := range report.Details {
		widgets = append(widgets, &chat.GoogleAppsCardV1Widget{
			DecoratedText: &chat.GoogleAppsCardV1DecoratedText{
				TopLabel:  d.Label,
				Text:      d.Value,
				StartIcon: &chat.GoogleAppsCardV1Icon{KnownIcon: "STAR"},
			},
		})
	}

	message := &chat.Message{
		CardsV2: []*chat.CardWithId{{
			CardId: "yield_report",
			Card: &chat.GoogleAppsCardV1Card{
				Header: &chat.GoogleAppsCardV1CardHeader{
					Title:    "🚀 YieldMaster Report",
					Subtitle: report.Title,
				},
				Sections: []*chat.GoogleAppsCardV1Section{{
					Header:  report.Subtitle,
					Widgets: widgets,
				}},
			},
		}},
	}

	if _, err := svc.Spaces.Messages.Create(report.SpaceName, message).Context(ctx).Do(); err != nil {
		return classify("chat", err)
	}
	return nil
}

// FetchBankEmails searches the mailbox for messages mentioning any of the
// registry's bank names and pulls the interesting headers plus a readable
// body for each hit.
func (a *Adapter) FetchBankEmails(ctx context.Context, token string, bankNames []string) ([]models.BankEmail, error) {
	if len(bankNames) == 0 {
		return nil, nil
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(staticToken(token)))
	if err != nil {
		return nil, errs.NewTransientIOError("gmail", err.Error())
	}

	quoted := make([]string, 0, len(bankNames))
	for _, name := range bankNames {
		quoted = append(quoted, `"`+name+`"`)
	}
	query := strings.Join(quoted, " OR ")

	list, err := svc.Users.Messages.List("me").Q(query).MaxResults(15).Context(ctx).Do()
	if err != nil {
		return nil, classify("gmail", err)
	}

	emails := make([]models.BankEmail, 0, len(list.Messages))
	for _, ref := range list.Messages {
		msg, err := svc.Users.Messages.Get("me", ref.Id).Context(ctx).Do()
		if err != nil {
			return nil, classify("gmail", err)
		}
		emails = append(emails, toBankEmail(msg))
	}
	return emails, nil
}

// ---- Helpers ----

func toBankEmail(msg *gmail.Message) models.BankEmail {
	email := models.BankEmail{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		Subject:  "(Sin asunto)",
		From:     "Desconocido",
	}
	if msg.Payload == nil {
		return email
	}

	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			email.Subject = h.Value
		case "From":
			email.From = h.Value
		case "Date":
			email.Date = formatMailDate(h.Value)
		}
	}

	email.Body = extractBody(msg.Payload)
	if email.Body == "" {
		email.Body = msg.Snippet
	}
	return email
}

func extractBody(payload *gmail.MessagePart) string {
	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			if part.MimeType == "text/plain" || part.MimeType == "text/html" {
				if part.Body != nil && part.Body.Data != "" {
					return decodeBody(part.Body.Data)
				}
			}
		}
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	return ""
}

func decodeBody(data string) string {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(raw)
}

func formatMailDate(raw string) string {
	t, err := mail.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format("02 Jan")
}

func staticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

// classify mirrors the row-store mapping. The insufficient-scope case matters
// here most: collaborators need grants the base sign-in may not carry.
func classify(service string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return errs.NewSessionExpiredError()
		case http.StatusForbidden:
			return errs.NewInsufficientScopeError(service)
		}
	}
	return errs.NewTransientIOError(service, err.Error())
}
