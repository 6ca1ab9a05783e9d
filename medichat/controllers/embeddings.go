package controllers

import (
	"context"
	"errors"
	"os"

	"medichat/medichat/services/embeddings"
	"medichat/medichat/services/query"
	"medichat/medichat/types"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

// ErrFileNotFound maps to a 404 in the routes.
var ErrFileNotFound = errors.New("file not found")

type EmbeddingsController struct {
	index    *embeddings.Index
	engine   query.Answerer
	dataPath string
}

func NewEmbeddingsController(index *embeddings.Index, engine query.Answerer, dataPath string) *EmbeddingsController {
	return &EmbeddingsController{index: index, engine: engine, dataPath: dataPath}
}

// EmbeddingsQuery answers with the retrieval-backed engine and exposes the
// similarity search as its own endpoint.
func (c *EmbeddingsController) EmbeddingsQuery(ctx context.Context, req types.QueryRequest) (*types.EmbeddingsQueryResponse, error) {
	logging.AppLogger.Info("Processing hospital embeddings query", zap.String("query", req.Query))
	resp := c.engine.Answer(ctx, req.Query)
	// model output is already markdown text
	return &types.EmbeddingsQueryResponse{Response: resp.Response, MarkdownResponse: resp.Response}, nil
}

// UpdateData re-embeds the hospital data file.
func (c *EmbeddingsController) UpdateData(ctx context.Context, filePath string) (*types.UpdateDataResponse, error) {
	if filePath == "" {
		filePath = c.dataPath
	}
	if _, err := os.Stat(filePath); err != nil {
		return nil, ErrFileNotFound
	}
	updated, err := c.index.Update(ctx)
	if err != nil {
		return nil, err
	}
	return &types.UpdateDataResponse{
		Status:            "success",
		EmbeddingsUpdated: updated,
		FilePath:          filePath,
	}, nil
}
