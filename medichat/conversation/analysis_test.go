package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Analyze_Empty_Conversation(t *testing.T) {
	req := require.New(t)
	c := &Conversation{}

	a := Analyze(c)

	req.Zero(a.TotalMessages)
	req.Empty(a.MessageTypes)
	req.Zero(a.Duration)
}

func Test_Analyze_Counts_Roles_And_Duration(t *testing.T) {
	req := require.New(t)
	c := &Conversation{
		Messages: []Message{
			{Role: RoleUser, Timestamp: 1_000},
			{Role: RoleAssistant, Timestamp: 2_000},
			{Role: RoleUser, Timestamp: 61_000},
		},
	}

	a := Analyze(c)

	req.Equal(3, a.TotalMessages)
	req.Equal(map[string]int{RoleUser: 2, RoleAssistant: 1}, a.MessageTypes)
	req.Equal(time.Minute, a.Duration)
}
