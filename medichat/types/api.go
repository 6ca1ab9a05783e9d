package types

// QueryRequest is the body of POST /query (and what the client-side chat
// flow sends to the retrieval service).
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

type QueryResponse struct {
	Response  string `json:"response"`
	Reasoning string `json:"reasoning,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the engine envelope returned by POST /chat.
type ChatResponse struct {
	Status    string `json:"status"`
	Response  string `json:"response"`
	Reasoning string `json:"reasoning,omitempty"`
}

type EmbeddingsQueryResponse struct {
	Response         string `json:"response"`
	MarkdownResponse string `json:"markdown_response"`
}

type HospitalQueryResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type UpdateDataResponse struct {
	Status            string `json:"status"`
	EmbeddingsUpdated bool   `json:"embeddings_updated"`
	FilePath          string `json:"file_path"`
}

// ErrorResponse is the uniform error envelope for all routes.
type ErrorResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}
