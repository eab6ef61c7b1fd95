package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type syncSheetStore interface {
	GetOrCreate(ctx context.Context, token string) (string, error)
	FetchBanks(ctx context.Context, token, spreadsheetID string) ([]models.Bank, error)
	SaveBanks(ctx context.Context, token, spreadsheetID string, banks []models.Bank) error
	FetchBalances(ctx context.Context, token, spreadsheetID string) (*models.Balances, error)
	SaveBalances(ctx context.Context, token, spreadsheetID string, balances models.Balances) error
}

type syncRegistry interface {
	List() []models.Bank
	Replace(banks []models.Bank)
}

type syncBalances interface {
	Get() models.Balances
	Set(balances models.Balances)
}

type syncSessionCache interface {
	Clear(ctx context.Context) error
}

// pushJob carries the snapshot taken at enqueue time, so a push never writes
// state older than the mutation that triggered it.
type pushJob struct {
	token         string
	spreadsheetID string
	banks         []models.Bank
	balances      *models.Balances
}

// syncCoordinator reconciles the in-memory registry and balances against the
// user's spreadsheet. One session at a time: Unauthenticated → Bootstrapping
// → Synced, with a transient error state that a manual refresh can leave.
// Pushes run on a single background worker; failures land on the failure
// channel and in the status, nothing retries on its own.
type syncCoordinator struct {
	sheets   syncSheetStore
	registry syncRegistry
	balances syncBalances
	sessions syncSessionCache
	log      *slog.Logger

	mu            sync.Mutex
	token         string
	spreadsheetID string
	state         models.SyncState
	lastError     string

	jobs     chan pushJob
	failures chan error
	done     chan struct{}
}

func NewSyncCoordinator(log *slog.Logger, sheets syncSheetStore, registry syncRegistry, balances syncBalances, sessions syncSessionCache) *syncCoordinator {
	s := &syncCoordinator{
		sheets:   sheets,
		registry: registry,
		balances: balances,
		sessions: sessions,
		log:      log,
		state:    models.SyncUnauthenticated,
		jobs:     make(chan pushJob, 16),
		failures: make(chan error, 8),
		done:     make(chan struct{}),
	}
	go s.worker()
	return s
}

func (s *syncCoordinator) Stop() {
	close(s.done)
}

// Activate binds the credential and runs bootstrap + pull. The credential
// stays bound on transient failures so a manual refresh can retry.
func (s *syncCoordinator) Activate(ctx context.Context, token string) error {
	if token == "" {
		return errs.NewValidationError("access token is required")
	}

	s.mu.Lock()
	s.token = token
	s.spreadsheetID = ""
	s.state = models.SyncBootstrapping
	s.lastError = ""
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh re-runs bootstrap (when no handle is bound yet) and a full pull.
// This is the manual retry path; it is safe to call repeatedly.
func (s *syncCoordinator) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token, spreadsheetID := s.token, s.spreadsheetID
	s.mu.Unlock()

	if token == "" {
		return errs.NewValidationError("no active session")
	}

	if spreadsheetID == "" {
		sid, err := s.bootstrap(ctx, token)
		if err != nil {
			s.handleSyncError(ctx, err)
			return err
		}
		spreadsheetID = sid
	}

	if err := s.pullAll(ctx, token, spreadsheetID); err != nil {
		s.handleSyncError(ctx, err)
		return err
	}

	s.mu.Lock()
	s.state = models.SyncSynced
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// Deactivate drops the session: credential, handle, state, cached copy.
func (s *syncCoordinator) Deactivate(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.spreadsheetID = ""
	s.state = models.SyncUnauthenticated
	s.lastError = ""
	s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		logger.FromContext(ctx).Warn("session cache clear failed", "error", err)
	}
}

func (s *syncCoordinator) Status() dto.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dto.SyncStatus{
		State:         s.state,
		SpreadsheetID: s.spreadsheetID,
		LastError:     s.lastError,
	}
}

// Credential exposes the bound token to services calling collaborators on
// the user's behalf.
func (s *syncCoordinator) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// SchedulePushBanks enqueues a full overwrite of the banks sheet with the
// registry snapshot taken right now. No-op without an active handle.
func (s *syncCoordinator) SchedulePushBanks() {
	job, ok := s.newJob()
	if !ok {
		return
	}
	job.banks = s.registry.List()
	s.enqueue(job)
}

func (s *syncCoordinator) SchedulePushBalances() {
	job, ok := s.newJob()
	if !ok {
		return
	}
	balances := s.balances.Get()
	job.balances = &balances
	s.enqueue(job)
}

// PushFailures is the error channel background pushes report on.
func (s *syncCoordinator) PushFailures() <-chan error {
	return s.failures
}

// ---- Internals ----

// bootstrap resolves the external handle, creating the spreadsheet on first
// run. Find-before-create lives in the sheet store.
func (s *syncCoordinator) bootstrap(ctx context.Context, token string) (string, error) {
	sid, err := s.sheets.GetOrCreate(ctx, token)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.spreadsheetID = sid
	s.mu.Unlock()

	logger.FromContext(ctx).Info("sync handle bound", "spreadsheet_id", sid)
	return sid, nil
}

// pullAll loads both sub-collections. "No data" keeps the in-memory
// defaults; only real failures surface.
func (s *syncCoordinator) pullAll(ctx context.Context, token, spreadsheetID string) error {
	banks, err := s.sheets.FetchBanks(ctx, token, spreadsheetID)
	if err != nil {
		return err
	}
	if len(banks) > 0 {
		s.registry.Replace(banks)
	}

	balances, err := s.sheets.FetchBalances(ctx, token, spreadsheetID)
	if err != nil {
		return err
	}
	if balances != nil {
		s.balances.Set(*balances)
	}

	logger.FromContext(ctx).Info("sync pull completed", "banks", len(banks))
	return nil
}

// handleSyncError folds a failure into the state machine. Session expiry is
// the only condition that tears the whole session down.
func (s *syncCoordinator) handleSyncError(ctx context.Context, err error) {
	var expired *errs.SessionExpiredError
	if errors.As(err, &expired) {
		s.mu.Lock()
		s.token = ""
		s.spreadsheetID = ""
		s.state = models.SyncUnauthenticated
		s.lastError = expired.Message
		s.mu.Unlock()

		if cerr := s.sessions.Clear(ctx); cerr != nil {
			logger.FromContext(ctx).Warn("session cache clear failed", "error", cerr)
		}
		return
	}

	s.mu.Lock()
	s.state = models.SyncError
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *syncCoordinator) newJob() (pushJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.spreadsheetID == "" {
		return pushJob{}, false
	}
	return pushJob{token: s.token, spreadsheetID: s.spreadsheetID}, true
}

func (s *syncCoordinator) enqueue(job pushJob) {
	select {
	case s.jobs <- job:
	case <-s.done:
	}
}

func (s *syncCoordinator) worker() {
	for {
		select {
		case job := <-s.jobs:
			s.runPush(job)
		case <-s.done:
			return
		}
	}
}

func (s *syncCoordinator) runPush(job pushJob) {
	ctx := logger.ToContext(context.Background(), s.log)

	var err error
	kind := "banks"
	if job.balances != nil {
		kind = "balances"
		err = s.sheets.SaveBalances(ctx, job.token, job.spreadsheetID, *job.balances)
	} else {
		err = s.sheets.SaveBanks(ctx, job.token, job.spreadsheetID, job.banks)
	}
	if err == nil {
		s.log.Debug("push completed", "kind", kind)
		return
	}

	s.log.Warn("push failed", "kind", kind, "error", err)
	s.handleSyncError(ctx, err)
	select {
	case s.failures <- err:
	default:
	}
}
