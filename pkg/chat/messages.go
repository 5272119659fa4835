package chat

import (
	"strings"
	"time"
)

// Message is a single turn in the conversation between the user and
// the agent.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

func NewAgentMessage(content string) Message {
	return Message{
		Role:      RoleAgent,
		Content:   content,
		Timestamp: time.Now(),
	}
}
