package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type vertexJSONClient interface {
	GenerateJSON(ctx context.Context, req dto.VertexJSONRequest) (dto.VertexJSONResponse, error)
}

type ratesService struct {
	vertex   vertexJSONClient
	clockNow func() time.Time
}

func NewRatesService(vertex vertexJSONClient) *ratesService {
	return &ratesService{
		vertex:   vertex,
		clockNow: time.Now,
	}
}

const ratesPrompt = `Busca las tasas de interés nominal anual (TNA) actuales para plazos fijos en pesos de los principales bancos de Argentina (como Banco Nación, Santander, Galicia, BBVA, Macro, etc.).
Devuelve una lista en formato JSON que contenga el nombre del banco y la TNA en pesos. Si no encuentras la TNA en dólares, usa 0.1 como valor por defecto.
Formato esperado: [{"name": "Nombre Banco", "ratePesos": 35, "rateUsd": 0.1}]`

func ratesSchema() *dto.VertexSchema {
	return &dto.VertexSchema{
		Type: "array",
		Items: &dto.VertexSchema{
			Type: "object",
			Properties: map[string]*dto.VertexSchema{
				"name":      {Type: "string"},
				"ratePesos": {Type: "number"},
				"rateUsd":   {Type: "number"},
			},
			Required: []string{"name", "ratePesos"},
		},
	}
}

// FetchPublicRates asks the grounded oracle for current TNA offers. A
// malformed model answer degrades to an empty suggestion list with the
// timestamp kept; only transport failures surface as errors.
func (s *ratesService) FetchPublicRates(ctx context.Context) (dto.PublicRatesResult, error) {
	resp, err := s.vertex.GenerateJSON(ctx, dto.VertexJSONRequest{
		Prompt:           ratesPrompt,
		Schema:           ratesSchema(),
		GroundWithSearch: true,
	})
	if err != nil {
		return dto.PublicRatesResult{}, errs.NewTransientIOError("vertex", err.Error())
	}

	result := dto.PublicRatesResult{
		Rates:     []models.RateSuggestion{},
		Sources:   toCitations(resp.Sources),
		Timestamp: s.clockNow().Format(mergeTimeLayout),
	}

	var rates []models.RateSuggestion
	if err := json.Unmarshal([]byte(resp.Text), &rates); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("rate oracle returned unparsable payload", "error", errs.NewParseError(err.Error()))
		return result, nil
	}

	result.Rates = rates
	logger.FromContext(ctx).Info("public rates fetched", "count", len(rates))
	return result, nil
}

func toCitations(sources []dto.VertexSource) []models.SourceCitation {
	citations := make([]models.SourceCitation, 0, len(sources))
	for _, src := range sources {
		citations = append(citations, models.SourceCitation{Title: src.Title, URI: src.URI})
	}
	return citations
}
