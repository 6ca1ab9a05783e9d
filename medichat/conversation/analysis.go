package conversation

import (
	"time"

	"github.com/samber/lo"
)

// Analysis holds basic per-conversation metrics.
type Analysis struct {
	TotalMessages int            `json:"total_messages"`
	MessageTypes  map[string]int `json:"message_types"`
	Duration      time.Duration  `json:"conversation_duration"`
}

// Analyze computes message counts per role and the span between the first
// and last message. An empty conversation yields zero values.
func Analyze(c *Conversation) Analysis {
	a := Analysis{
		TotalMessages: len(c.Messages),
		MessageTypes:  map[string]int{},
	}
	if len(c.Messages) == 0 {
		return a
	}
	a.MessageTypes = lo.CountValuesBy(c.Messages, func(m Message) string {
		return m.Role
	})
	first := time.UnixMilli(c.Messages[0].Timestamp)
	last := time.UnixMilli(c.Messages[len(c.Messages)-1].Timestamp)
	a.Duration = last.Sub(first)
	return a
}
