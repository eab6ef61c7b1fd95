package services

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type fakeArchive struct {
	mu    sync.Mutex
	files []string
	done  chan struct{}
}

func (f *fakeArchive) Upload(ctx context.Context, fileName string, jpeg []byte) error {
	f.mu.Lock()
	f.files = append(f.files, fileName)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return nil
}

type fakeCaptureBalances struct {
	applied []float64
}

func (f *fakeCaptureBalances) SetFromCapture(ctx context.Context, amount float64) models.Balances {
	f.applied = append(f.applied, amount)
	return models.Balances{Pesos: amount}
}

func TestScanExtractsAmountAndArchivesImage(t *testing.T) {
	vertex := &fakeVertex{resp: dto.VertexJSONResponse{Text: `{"amount":12500.5}`}}
	archive := &fakeArchive{done: make(chan struct{})}
	svc := NewCaptureService(vertex, archive, &fakeCaptureBalances{})

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Scan(ctx, image)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if !got.Detected || got.Amount != 12500.5 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(vertex.got.ImageJPEG) == 0 {
		t.Fatal("decoded image must reach the oracle")
	}

	select {
	case <-archive.done:
	case <-time.After(2 * time.Second):
		t.Fatal("archive upload never ran")
	}
	archive.mu.Lock()
	defer archive.mu.Unlock()
	if len(archive.files) != 1 {
		t.Fatalf("expected 1 archived file, got %d", len(archive.files))
	}
}

func TestScanRejectsNonBase64Input(t *testing.T) {
	svc := NewCaptureService(&fakeVertex{}, &fakeArchive{}, &fakeCaptureBalances{})

	ctx := logger.ToContext(context.Background(), testLogger())
	_, err := svc.Scan(ctx, "%%% not base64 %%%")
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScanNoAmountDetected(t *testing.T) {
	vertex := &fakeVertex{resp: dto.VertexJSONResponse{Text: `{"amount":0}`}}
	svc := NewCaptureService(vertex, &fakeArchive{}, &fakeCaptureBalances{})

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Scan(ctx, image)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if got.Detected || got.Amount != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestScanUnparsableAnswerDegrades(t *testing.T) {
	vertex := &fakeVertex{resp: dto.VertexJSONResponse{Text: "that is a cat, not a statement"}}
	svc := NewCaptureService(vertex, &fakeArchive{}, &fakeCaptureBalances{})

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Scan(ctx, image)
	if err != nil {
		t.Fatalf("parse failure must not be an error, got %v", err)
	}
	if got.Detected {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestConfirmAppliesAmountToBalances(t *testing.T) {
	balances := &fakeCaptureBalances{}
	svc := NewCaptureService(&fakeVertex{}, &fakeArchive{}, balances)

	ctx := logger.ToContext(context.Background(), testLogger())
	got, err := svc.Confirm(ctx, 9000)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if got.Pesos != 9000 || len(balances.applied) != 1 {
		t.Fatalf("unexpected result: %+v applied=%v", got, balances.applied)
	}

	if _, err := svc.Confirm(ctx, 0); err == nil {
		t.Fatal("expected validation error for zero amount")
	}
}
