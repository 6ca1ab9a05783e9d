package controllers

import (
	"context"
	"errors"
	"fmt"

	"medichat/medichat/services/query"
	"medichat/medichat/services/ragengine"
	"medichat/medichat/types"
	"medichat/medichat/utils/logging"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrEmptyQuery maps to a 400 in the routes.
var ErrEmptyQuery = errors.New("query cannot be empty")

type QueryController struct {
	engine   query.Answerer
	validate *validator.Validate
}

func NewQueryController(engine query.Answerer) *QueryController {
	return &QueryController{engine: engine, validate: validator.New()}
}

// Query answers a medical query through the RAG engine. Engine-level error
// status is surfaced as an error so the route can return a 500 envelope.
func (c *QueryController) Query(ctx context.Context, req types.QueryRequest) (*types.QueryResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, ErrEmptyQuery
	}
	logging.AppLogger.Info("Processing medical query", zap.String("query", req.Query))

	resp := c.engine.Answer(ctx, req.Query)
	if resp.Status == ragengine.StatusError {
		return nil, errors.New(resp.Response)
	}

	reasoning := resp.Reasoning
	if reasoning == "" {
		reasoning = GenerateReasoning(req.Query)
	}
	return &types.QueryResponse{Response: resp.Response, Reasoning: reasoning}, nil
}

// GenerateReasoning is the canned explanation used when the engine supplies
// none of its own.
func GenerateReasoning(query string) string {
	return fmt.Sprintf(`Reasoning for the response to '%s':
1. Analyzed the specific medical context
2. Generated insights based on available medical knowledge
3. Provided a clear and informative answer`, query)
}
