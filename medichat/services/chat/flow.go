// Package chat orchestrates one user turn against the retrieval endpoint:
// optimistic user append, a single outbound call, then the assistant reply
// or an error placeholder.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"medichat/medichat/conversation"
	"medichat/medichat/types"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

const (
	// NoInformationFound replaces an absent response field on an otherwise
	// well-formed reply.
	NoInformationFound = "No information found."
	// SubmitFailed is the fixed assistant text for transport/parse failures.
	SubmitFailed = "Sorry, something went wrong. Please try again."
)

// Querier is the one call the flow makes per user turn.
type Querier interface {
	Query(ctx context.Context, query string) (*types.QueryResponse, error)
}

// Flow runs submissions against the current conversation. The loading flag
// is single-slot, so overlapping submissions collapse into one indicator
// even though each network call proceeds independently.
type Flow struct {
	repo   *conversation.Repository
	client Querier

	mu      sync.Mutex
	loading bool
	failed  bool
}

func NewFlow(repo *conversation.Repository, client Querier) *Flow {
	return &Flow{repo: repo, client: client}
}

// Submit runs one turn. Empty (post-trim) queries are a no-op. The response
// is appended to the conversation the query originated from; if that
// conversation was deleted mid-flight the response is discarded.
func (f *Flow) Submit(ctx context.Context, query string) *conversation.Message {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	cur := f.repo.Current()
	if cur == nil {
		return nil
	}
	origin := cur.ID

	f.set(true, false)
	defer func() { f.set(false, f.Failed()) }()

	f.repo.Append(conversation.RoleUser, query, "", "")

	resp, err := f.client.Query(ctx, query)
	if err != nil {
		logging.ErrorLogger.Error("rag query failed", zap.Error(err), zap.String("conversation", origin))
		f.set(true, true)
		msg, aerr := f.repo.AppendTo(origin, conversation.RoleAssistant, SubmitFailed, "", "")
		if aerr != nil {
			logging.AppLogger.Info("discarding failure reply for deleted conversation", zap.String("conversation", origin))
			return nil
		}
		return msg
	}

	text := resp.Response
	if text == "" {
		text = NoInformationFound
	}
	msg, aerr := f.repo.AppendTo(origin, conversation.RoleAssistant, text, "", resp.Reasoning)
	if errors.Is(aerr, conversation.ErrNotFound) {
		logging.AppLogger.Info("discarding reply for deleted conversation", zap.String("conversation", origin))
		return nil
	}
	return msg
}

// Loading reports whether a submission is in flight.
func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Failed reports the user-visible error flag, distinct from the message
// list. It resets when the next submission starts.
func (f *Flow) Failed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

func (f *Flow) set(loading, failed bool) {
	f.mu.Lock()
	f.loading = loading
	f.failed = failed
	f.mu.Unlock()
}
