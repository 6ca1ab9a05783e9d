package ragengine

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	httputils "medichat/medichat/utils/http"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

// AnswerStream is the SSE variant of Answer: it yields response chunks as
// the model produces them. Retrieval failures surface immediately as an
// error rather than through the envelope.
func (e *Engine) AnswerStream(ctx context.Context, query string) (<-chan string, error) {
	defer logging.LogDuration(ctx, "rag_engine_answer_stream")()

	contexts := e.retriever.Search(ctx, query, defaultTopK)
	if len(contexts) == 0 {
		return nil, fmt.Errorf("no semantic context found")
	}

	url := fmt.Sprintf("%s/chat/completions", e.baseURL)
	body, err := httputils.PostStreamWithAuth(ctx, url, e.apiKey, ChatRequest{
		Model:       e.model,
		Messages:    e.buildMessages(query, contexts),
		Stream:      true,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		return nil, err
	}

	ch := make(chan string)

	go func() {
		defer func() {
			close(ch)
			body.Close()
		}()

		reader := bufio.NewReader(body)

		for {
			select {
			case <-ctx.Done():
				logging.AppLogger.Info("AnswerStream context cancelled")
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return
				}
				logging.ErrorLogger.Error("stream read error", zap.Any("err", err))
				return
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "data:") {
				line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
			if line == "[DONE]" {
				return
			}

			var chunk struct {
				Choices []struct {
					Delta struct {
						Content string `json:"content"`
					} `json:"delta"`
				} `json:"choices"`
			}
			if err := json.Unmarshal([]byte(line), &chunk); err != nil {
				logging.ErrorLogger.Error("stream JSON parse error",
					zap.Any("err", err), zap.String("raw_line", line))
				continue
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case ch <- choice.Delta.Content:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
