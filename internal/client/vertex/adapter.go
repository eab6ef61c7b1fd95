package vertexclient

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/Fersca/YieldMaster/internal/dto"
)

type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// GenerateJSON runs a schema-constrained generation and returns the raw JSON
// text plus any citations the grounded answer carries. Callers own parsing;
// this adapter never interprets the payload.
func (a *Adapter) GenerateJSON(ctx context.Context, req dto.VertexJSONRequest) (dto.VertexJSONResponse, error) {
	out := dto.VertexJSONResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("vertex model is required")
	}

	model := a.client.GenerativeModel(modelName)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	if req.Schema != nil {
		model.GenerationConfig.ResponseSchema = toGenaiSchema(req.Schema)
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.GroundWithSearch {
		model.Tools = []*genai.Tool{
			{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}},
		}
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if len(req.ImageJPEG) > 0 {
		parts = append(parts, genai.ImageData("jpeg", req.ImageJPEG))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return out, err
	}

	out.Text = collectText(resp)
	out.Sources = collectSources(resp)
	return out, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var text string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text
}

func collectSources(resp *genai.GenerateContentResponse) []dto.VertexSource {
	if resp == nil {
		return nil
	}

	var sources []dto.VertexSource
	for _, candidate := range resp.Candidates {
		if candidate.CitationMetadata == nil {
			continue
		}
		for _, citation := range candidate.CitationMetadata.Citations {
			if citation == nil || citation.URI == "" {
				continue
			}
			title := citation.Title
			if title == "" {
				title = citation.URI
			}
			sources = append(sources, dto.VertexSource{Title: title, URI: citation.URI})
		}
	}
	return sources
}

func toGenaiSchema(schema *dto.VertexSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        toGenaiType(schema.Type),
		Description: schema.Description,
		Required:    schema.Required,
	}

	if schema.Items != nil {
		out.Items = toGenaiSchema(schema.Items)
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
