package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/Fersca/YieldMaster/internal/bootstrap"
	"github.com/Fersca/YieldMaster/internal/config"
	"github.com/Fersca/YieldMaster/internal/crypto"
	"github.com/Fersca/YieldMaster/internal/handlers"
	"github.com/Fersca/YieldMaster/internal/response"
	"github.com/Fersca/YieldMaster/internal/router"
	"github.com/Fersca/YieldMaster/internal/services"
	"github.com/Fersca/YieldMaster/internal/store"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	kmsHelper := crypto.NewKMS(bs.KMS, cfg.KMSKeyName)

	// stores
	registry := store.NewRegistryStore()
	balances := store.NewBalanceStore()
	sessions := store.NewSessionStore(bs.Firestore, kmsHelper)
	sheets := store.NewSheetStore(bs.RowStoreAdapter, cfg.SpreadsheetName)

	// sync coordinator
	syncer := services.NewSyncCoordinator(bs.Log, sheets, registry, balances, sessions)
	defer syncer.Stop()

	// services
	bserv := services.NewBankService(registry, syncer)
	aserv := services.NewBalanceService(balances, syncer)
	pserv := services.NewProjectionService(registry, balances)
	gserv := services.NewSuggestService(registry, syncer)
	rserv := services.NewRatesService(bs.VertexAdapter)
	dserv := services.NewDiscountService(bs.VertexAdapter, registry)
	cserv := services.NewCaptureService(bs.VertexAdapter, bs.ArchiveAdapter, aserv)
	userv := services.NewUserService(bs.WorkspaceAdapter, syncer, sessions)
	eserv := services.NewReportService(bs.WorkspaceAdapter, syncer)
	iserv := services.NewInboxService(bs.WorkspaceAdapter, registry, syncer)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.SyncSvc = syncer
	deps.BankSvc = bserv
	deps.BalanceSvc = aserv
	deps.ProjectionSvc = pserv
	deps.RatesSvc = rserv
	deps.SuggestSvc = gserv
	deps.DiscountSvc = dserv
	deps.CaptureSvc = cserv
	deps.ReportSvc = eserv
	deps.InboxSvc = iserv
	deps.OAuthClientID = bs.OAuthClientID

	// restore the cached session so a restart does not force a sign-in
	appCtx := logger.ToContext(context.Background(), bs.Log)
	if _, err := userv.Restore(appCtx); err != nil {
		bs.Log.Warn("session restore failed", "error", err)
	}

	// drain background push failures
	go func() {
		for err := range syncer.PushFailures() {
			bs.Log.Warn("background push failed", "error", err)
		}
	}()

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
