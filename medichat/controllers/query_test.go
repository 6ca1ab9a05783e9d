package controllers

import (
	"context"
	"strings"
	"testing"

	"medichat/medichat/services/ragengine"
	"medichat/medichat/types"
	"medichat/medichat/utils/logging"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	m.Run()
}

type stubEngine struct {
	resp types.ChatResponse
}

func (s *stubEngine) Answer(_ context.Context, _ string) types.ChatResponse {
	return s.resp
}

func Test_Query_Empty_Query_Rejected(t *testing.T) {
	req := require.New(t)
	c := NewQueryController(&stubEngine{})

	_, err := c.Query(context.Background(), types.QueryRequest{})

	req.ErrorIs(err, ErrEmptyQuery)
}

func Test_Query_Engine_Error_Surfaces(t *testing.T) {
	req := require.New(t)
	c := NewQueryController(&stubEngine{resp: types.ChatResponse{
		Status:   ragengine.StatusError,
		Response: "upstream model unavailable",
	}})

	_, err := c.Query(context.Background(), types.QueryRequest{Query: "icu beds"})

	req.EqualError(err, "upstream model unavailable")
}

func Test_Query_Success_Passes_Through_Reasoning(t *testing.T) {
	req := require.New(t)
	c := NewQueryController(&stubEngine{resp: types.ChatResponse{
		Status:    ragengine.StatusSuccess,
		Response:  "There are 12 ICU beds available.",
		Reasoning: "matched bed availability records",
	}})

	resp, err := c.Query(context.Background(), types.QueryRequest{Query: "icu beds available"})

	req.NoError(err)
	req.Equal("There are 12 ICU beds available.", resp.Response)
	req.Equal("matched bed availability records", resp.Reasoning)
}

func Test_Query_Missing_Reasoning_Gets_Canned_Text(t *testing.T) {
	req := require.New(t)
	c := NewQueryController(&stubEngine{resp: types.ChatResponse{
		Status:   ragengine.StatusSuccess,
		Response: "There are 12 ICU beds available.",
	}})

	resp, err := c.Query(context.Background(), types.QueryRequest{Query: "icu beds available"})

	req.NoError(err)
	req.True(strings.Contains(resp.Reasoning, "'icu beds available'"))
	req.True(strings.Contains(resp.Reasoning, "medical context"))
}
