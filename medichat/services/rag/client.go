// Package rag is the client for the retrieval-augmented-generation endpoint.
// The service behind it is an opaque collaborator: one POST per user turn,
// no retry, no client-side timeout beyond the transport defaults.
package rag

import (
	"context"

	"medichat/medichat/types"
	httputils "medichat/medichat/utils/http"
	"medichat/medichat/utils/logging"
)

type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

func (c *Client) Query(ctx context.Context, query string) (*types.QueryResponse, error) {
	defer logging.LogDuration(ctx, "rag_client_query")()
	var resp types.QueryResponse
	if err := httputils.PostJSON(ctx, c.baseURL+"/query", types.QueryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
