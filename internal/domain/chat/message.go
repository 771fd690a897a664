package chat

import (
	"fmt"
	"time"

	"beacon/internal/shared/id"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one transcript entry. Timestamps are assigned by the server at
// persist time; messages are never mutated afterwards.
type Message struct {
	id        uint
	sid       string
	sessionID uint
	role      Role
	content   string
	createdAt time.Time
}

func NewMessage(sessionID uint, role Role, content string) (*Message, error) {
	if sessionID == 0 {
		return nil, fmt.Errorf("session ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid message role: %s", role)
	}
	if content == "" {
		return nil, fmt.Errorf("message content is required")
	}

	return &Message{
		sid:       id.NewChatMessageID(),
		sessionID: sessionID,
		role:      role,
		content:   content,
	}, nil
}

func ReconstructMessage(mid uint, sid string, sessionID uint, role Role, content string, createdAt time.Time) (*Message, error) {
	if mid == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid message role: %s", role)
	}
	return &Message{
		id:        mid,
		sid:       sid,
		sessionID: sessionID,
		role:      role,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) SID() string {
	return m.sid
}

func (m *Message) SessionID() uint {
	return m.sessionID
}

func (m *Message) Role() Role {
	return m.role
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}
