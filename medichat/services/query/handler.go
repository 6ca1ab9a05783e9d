// Package query screens incoming queries before they reach the engine:
// normalization, ambiguity detection, and conversation logging.
package query

import (
	"context"
	"regexp"
	"strings"

	"medichat/medichat/conversation"
	"medichat/medichat/prompts"
	"medichat/medichat/types"
)

// Answerer produces the actual answer once a query passes screening.
type Answerer interface {
	Answer(ctx context.Context, query string) types.ChatResponse
}

type Result struct {
	Status         string   `json:"status"`
	Response       string   `json:"response,omitempty"`
	Reasoning      string   `json:"reasoning,omitempty"`
	Clarifications []string `json:"clarification_questions,omitempty"`
}

type Handler struct {
	answerer Answerer
	prompts  *prompts.PromptConfig
	// repo is optional; when present both sides of the turn are logged.
	repo *conversation.Repository
}

func NewHandler(answerer Answerer, pc *prompts.PromptConfig, repo *conversation.Repository) *Handler {
	return &Handler{answerer: answerer, prompts: pc, repo: repo}
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// Preprocess lowercases and strips special characters.
func Preprocess(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	return nonAlnumRe.ReplaceAllString(query, "")
}

var fillerWords = []string{"something", "anything", "whatever"}

// IsAmbiguous flags very short queries and filler-word queries.
func IsAmbiguous(query string) bool {
	if len(strings.Fields(query)) < 3 {
		return true
	}
	for _, w := range fillerWords {
		if strings.Contains(query, w) {
			return true
		}
	}
	return false
}

// Handle screens the query, asks for clarification when it is too vague,
// and otherwise delegates to the answerer.
func (h *Handler) Handle(ctx context.Context, rawQuery string, hospitalDomain bool) Result {
	processed := Preprocess(rawQuery)

	if IsAmbiguous(processed) {
		questions := h.prompts.GenericClarifications
		if hospitalDomain {
			questions = h.prompts.HospitalClarifications
		}
		return Result{
			Status:         "clarification_needed",
			Clarifications: questions,
		}
	}

	resp := h.answerer.Answer(ctx, rawQuery)

	if h.repo != nil {
		h.repo.Append(conversation.RoleUser, rawQuery, "", "")
		h.repo.Append(conversation.RoleAssistant, resp.Response, "", resp.Reasoning)
	}

	return Result{
		Status:    resp.Status,
		Response:  resp.Response,
		Reasoning: resp.Reasoning,
	}
}
