package controllers

import (
	"context"
	"errors"
	"strings"

	"medichat/medichat/services/query"
	"medichat/medichat/services/ragengine"
	"medichat/medichat/types"
)

// ErrEmptyMessage maps to a 400 in the routes.
var ErrEmptyMessage = errors.New("message cannot be empty")

type ChatController struct {
	handler *query.Handler
	engine  *ragengine.Engine
}

func NewChatController(handler *query.Handler, engine *ragengine.Engine) *ChatController {
	return &ChatController{handler: handler, engine: engine}
}

// Chat screens the message (ambiguity, normalization) and answers it.
func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (query.Result, error) {
	if strings.TrimSpace(req.Message) == "" {
		return query.Result{}, ErrEmptyMessage
	}
	return c.handler.Handle(ctx, req.Message, true), nil
}

// ChatStream bypasses screening and streams raw model chunks.
func (c *ChatController) ChatStream(ctx context.Context, message string) (<-chan string, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	return c.engine.AnswerStream(ctx, message)
}
