package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type captureArchive interface {
	Upload(ctx context.Context, fileName string, jpeg []byte) error
}

type captureBalances interface {
	SetFromCapture(ctx context.Context, amount float64) models.Balances
}

type captureService struct {
	vertex   vertexJSONClient
	archive  captureArchive
	balances captureBalances
	clockNow func() time.Time
}

func NewCaptureService(vertex vertexJSONClient, archive captureArchive, balances captureBalances) *captureService {
	return &captureService{
		vertex:   vertex,
		archive:  archive,
		balances: balances,
		clockNow: time.Now,
	}
}

const capturePrompt = `Actúa como un experto en OCR financiero. De esta imagen (resumen de banco o pantalla), extrae únicamente el saldo total o monto principal. Devuelve el resultado en formato JSON con la llave 'amount' y el valor numérico. Ejemplo: {"amount": 12500.50}. Si no hay monto claro, devuelve 0.`

func captureSchema() *dto.VertexSchema {
	return &dto.VertexSchema{
		Type: "object",
		Properties: map[string]*dto.VertexSchema{
			"amount": {Type: "number"},
		},
		Required: []string{"amount"},
	}
}

// Scan extracts the main balance from a photographed statement. The archive
// copy is uploaded in the background and never blocks or fails the scan;
// an unreadable model answer resolves to "nothing detected".
func (s *captureService) Scan(ctx context.Context, imageBase64 string) (dto.CaptureScanResult, error) {
	jpeg, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil || len(jpeg) == 0 {
		return dto.CaptureScanResult{}, errs.NewValidationError("image must be base64-encoded jpeg data")
	}

	log := logger.FromContext(ctx)

	fileName := fmt.Sprintf("capture_%d.jpg", s.clockNow().UnixMilli())
	go func(ctx context.Context) {
		if err := s.archive.Upload(ctx, fileName, jpeg); err != nil {
			log.Warn("capture archive upload failed", "file", fileName, "error", err)
		}
	}(context.WithoutCancel(ctx))

	resp, err := s.vertex.GenerateJSON(ctx, dto.VertexJSONRequest{
		Prompt:    capturePrompt,
		Schema:    captureSchema(),
		ImageJPEG: jpeg,
	})
	if err != nil {
		return dto.CaptureScanResult{}, errs.NewTransientIOError("vertex", err.Error())
	}

	var parsed struct {
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		log.Warn("ocr oracle returned unparsable payload", "error", errs.NewParseError(err.Error()))
		return dto.CaptureScanResult{}, nil
	}
	if parsed.Amount <= 0 {
		return dto.CaptureScanResult{}, nil
	}

	log.Info("capture scanned", "amount", parsed.Amount)
	return dto.CaptureScanResult{Amount: parsed.Amount, Detected: true}, nil
}

// Confirm applies a detected amount to the pesos balance.
func (s *captureService) Confirm(ctx context.Context, amount float64) (models.Balances, error) {
	if amount <= 0 {
		return models.Balances{}, errs.NewValidationError("detected amount must be positive")
	}
	return s.balances.SetFromCapture(ctx, amount), nil
}
