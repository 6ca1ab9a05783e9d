// Package conversation holds the client-side chat state: the conversation
// collection, the current-selection pointer, and message threading.
package conversation

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of dialogue. Messages are append-only; the only field
// mutated after append is MedicalContext, attached asynchronously.
type Message struct {
	ID              string `json:"id"`
	Role            string `json:"role"`
	Content         string `json:"content"`
	MarkdownContent string `json:"markdownContent,omitempty"`
	Reasoning       string `json:"reasoning,omitempty"`
	Timestamp       int64  `json:"timestamp"`
	MedicalContext  string `json:"medicalContext,omitempty"`
}

// Conversation is a titled, timestamped thread of messages. Timestamps are
// epoch milliseconds to stay interchangeable with the persisted form.
type Conversation struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Messages        []Message `json:"messages"`
	CreatedAt       int64     `json:"createdAt"`
	Department      string    `json:"department,omitempty"`
	MedicalCategory string    `json:"medicalCategory,omitempty"`
	RelevantMetrics []string  `json:"relevantMetrics,omitempty"`
}

func defaultTitle(t time.Time) string {
	return "Chat " + t.Format("Jan 2, 3:04 PM")
}

func newConversation(now time.Time) *Conversation {
	return &Conversation{
		ID:        uuid.New().String(),
		Title:     defaultTitle(now),
		Messages:  []Message{},
		CreatedAt: now.UnixMilli(),
	}
}

func newMessage(role, content, markdown, reasoning string, now time.Time) Message {
	return Message{
		ID:              uuid.New().String(),
		Role:            role,
		Content:         content,
		MarkdownContent: markdown,
		Reasoning:       reasoning,
		Timestamp:       now.UnixMilli(),
	}
}
