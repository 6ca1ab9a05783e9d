// Package ragengine answers medical queries: retrieve context chunks, then
// one chat-completion call against an OpenAI-compatible API.
package ragengine

import (
	"context"
	"fmt"

	"medichat/medichat/prompts"
	"medichat/medichat/types"
	httputils "medichat/medichat/utils/http"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

const (
	StatusSuccess       = "success"
	StatusClarification = "clarification_needed"
	StatusError         = "error"
)

const defaultTopK = 5

// Retriever supplies context chunks for a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) []string
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Engine struct {
	retriever    Retriever
	baseURL      string
	apiKey       string
	model        string
	maxTokens    int
	temperature  float64
	hospitalName string
	prompts      *prompts.PromptConfig
}

func NewEngine(retriever Retriever, baseURL, apiKey, model, hospitalName string, pc *prompts.PromptConfig) *Engine {
	return &Engine{
		retriever:    retriever,
		baseURL:      baseURL,
		apiKey:       apiKey,
		model:        model,
		maxTokens:    300,
		temperature:  0.7,
		hospitalName: hospitalName,
		prompts:      pc,
	}
}

func (e *Engine) buildMessages(query string, contexts []string) []Message {
	combined := ""
	for i, c := range contexts {
		if i > 0 {
			combined += " "
		}
		combined += c
	}
	return []Message{
		{Role: "system", Content: prompts.Fill(e.prompts.SystemPrompt, e.hospitalName)},
		{Role: "user", Content: fmt.Sprintf("Original Query: %s\n\nContext: %s\n\n%s",
			query, combined, e.prompts.AnswerInstructions)},
	}
}

// Answer runs retrieval plus one completion. All failure paths map onto the
// response envelope; callers never see an error status leak as a panic.
func (e *Engine) Answer(ctx context.Context, query string) types.ChatResponse {
	defer logging.LogDuration(ctx, "rag_engine_answer")()

	contexts := e.retriever.Search(ctx, query, defaultTopK)
	if len(contexts) == 0 {
		logging.AppLogger.Warn("no semantic context found", zap.String("query", query))
		return types.ChatResponse{
			Status:    StatusClarification,
			Response:  prompts.Fill(e.prompts.NoMatchResponse, e.hospitalName),
			Reasoning: "No semantic match found",
		}
	}

	text, err := e.complete(ctx, ChatRequest{
		Model:       e.model,
		Messages:    e.buildMessages(query, contexts),
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		logging.ErrorLogger.Error("completion error", zap.Error(err), zap.String("query", query))
		return types.ChatResponse{
			Status:    StatusError,
			Response:  e.prompts.ErrorResponse,
			Reasoning: err.Error(),
		}
	}
	return types.ChatResponse{
		Status:    StatusSuccess,
		Response:  text,
		Reasoning: e.prompts.DefaultReasoning,
	}
}

func (e *Engine) complete(ctx context.Context, req ChatRequest) (string, error) {
	url := fmt.Sprintf("%s/chat/completions", e.baseURL)

	var resp struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := httputils.PostJSONWithAuth(ctx, url, e.apiKey, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("no choices returned")
}
