package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Fersca/YieldMaster/internal/dto"
	"github.com/Fersca/YieldMaster/internal/errs"
	"github.com/Fersca/YieldMaster/internal/models"
	"github.com/Fersca/YieldMaster/pkg/logger"
)

type discountRegistry interface {
	List() []models.Bank
}

type discountService struct {
	vertex   vertexJSONClient
	registry discountRegistry
	clockNow func() time.Time
}

func NewDiscountService(vertex vertexJSONClient, registry discountRegistry) *discountService {
	return &discountService{
		vertex:   vertex,
		registry: registry,
		clockNow: time.Now,
	}
}

func discountsSchema() *dto.VertexSchema {
	return &dto.VertexSchema{
		Type: "array",
		Items: &dto.VertexSchema{
			Type: "object",
			Properties: map[string]*dto.VertexSchema{
				"bankName": {Type: "string"},
				"benefits": {
					Type: "array",
					Items: &dto.VertexSchema{
						Type: "object",
						Properties: map[string]*dto.VertexSchema{
							"category":    {Type: "string"},
							"description": {Type: "string"},
							"discount":    {Type: "string"},
						},
						Required: []string{"category", "description"},
					},
				},
			},
			Required: []string{"bankName", "benefits"},
		},
	}
}

// FetchDailyDiscounts asks the grounded oracle for today's merchant benefits
// across the registry's banks. Parse failures degrade to an empty promotion
// list with an empty timestamp.
func (s *discountService) FetchDailyDiscounts(ctx context.Context) (dto.DiscountsResult, error) {
	banks := s.registry.List()
	names := make([]string, 0, len(banks))
	for _, b := range banks {
		names = append(names, b.Name)
	}

	prompt := fmt.Sprintf(`Busca las promociones, beneficios y descuentos bancarios vigentes en Argentina para el día de hoy (%s) para los siguientes bancos: %s.
Enfócate en rubros como Supermercados, Combustible, Gastronomía y Farmacias.
Devuelve un JSON con la estructura: [{"bankName": "Nombre", "benefits": [{"category": "Rubro", "description": "Detalle", "discount": "Porcentaje o monto"}]}]`,
		s.clockNow().Format("Monday 2 January"), strings.Join(names, ", "))

	resp, err := s.vertex.GenerateJSON(ctx, dto.VertexJSONRequest{
		Prompt:           prompt,
		Schema:           discountsSchema(),
		GroundWithSearch: true,
	})
	if err != nil {
		return dto.DiscountsResult{}, errs.NewTransientIOError("vertex", err.Error())
	}

	var promotions []models.Promotion
	if err := json.Unmarshal([]byte(resp.Text), &promotions); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("discount oracle returned unparsable payload", "error", errs.NewParseError(err.Error()))
		return dto.DiscountsResult{
			Promotions: []models.Promotion{},
			Sources:    toCitations(resp.Sources),
			Timestamp:  "",
		}, nil
	}

	logger.FromContext(ctx).Info("daily discounts fetched", "banks", len(promotions))
	return dto.DiscountsResult{
		Promotions: promotions,
		Sources:    toCitations(resp.Sources),
		Timestamp:  s.clockNow().Format("15:04"),
	}, nil
}
