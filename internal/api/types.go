package api

import (
	"fmt"
	"time"
)

// Document is the server-side metadata for one uploaded PDF. Content is
// never mutated by this client; only the name and existence are.
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// Clause is one extracted clause of a document.
type Clause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MessageRole identifies who produced a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one entry of a document chat transcript.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Validate checks if the ChatMessage is valid.
func (m ChatMessage) Validate() error {
	switch m.Role {
	case RoleUser, RoleAssistant:
	default:
		return fmt.Errorf("invalid message role: %s", m.Role)
	}
	return nil
}
