package handlers

import (
	"log/slog"

	"github.com/Fersca/YieldMaster/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         userService
	SyncSvc         syncService
	BankSvc         bankService
	BalanceSvc      balanceService
	ProjectionSvc   projectionService
	RatesSvc        ratesService
	SuggestSvc      suggestService
	DiscountSvc     discountService
	CaptureSvc      captureService
	ReportSvc       reportService
	InboxSvc        inboxService
	OAuthClientID   string
}
