package dto

// VertexJSONRequest asks the model for a schema-constrained JSON answer.
// GroundWithSearch attaches the google-search tool so answers carry citations.
type VertexJSONRequest struct {
	Model            string
	System           string
	Prompt           string
	Schema           *VertexSchema
	GroundWithSearch bool
	// ImageJPEG, when set, is sent as an inline image part next to the prompt.
	ImageJPEG []byte
}

type VertexJSONResponse struct {
	Text    string
	Sources []VertexSource
}

type VertexSource struct {
	Title string
	URI   string
}

type VertexSchema struct {
	Type        string
	Description string
	Properties  map[string]*VertexSchema
	Required    []string
	Items       *VertexSchema
}
