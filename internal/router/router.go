package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Fersca/YieldMaster/internal/handlers"
	"github.com/Fersca/YieldMaster/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)
	r.Use(middleware.BearerToken)

	sh := handlers.NewSessionHandlers(deps)
	yh := handlers.NewSyncHandlers(deps)
	bh := handlers.NewBankHandlers(deps)
	ah := handlers.NewBalanceHandlers(deps)
	ph := handlers.NewProjectionHandlers(deps)
	rh := handlers.NewRatesHandlers(deps)
	ch := handlers.NewCaptureHandlers(deps)
	eh := handlers.NewReportHandlers(deps)

	r.Mount("/session", sh.SessionRoutes())
	r.Mount("/sync", yh.SyncRoutes())
	r.Mount("/banks", bh.BankRoutes())
	r.Mount("/balances", ah.BalanceRoutes())
	r.Mount("/projection", ph.ProjectionRoutes())
	r.Mount("/rates", rh.RatesRoutes())
	r.Mount("/discounts", rh.DiscountRoutes())
	r.Mount("/capture", ch.CaptureRoutes())
	r.Mount("/reports", eh.ReportRoutes())
	r.Mount("/inbox", eh.InboxRoutes())
	return r
}
