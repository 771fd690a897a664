package chat

import "context"

// HistoryLimit bounds the transcript loaded per orchestrator turn.
const HistoryLimit = 50

// SessionRepository defines persistence for chat sessions and messages.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// GetByOrgAndSID enforces tenant scoping on reads.
	GetByOrgAndSID(ctx context.Context, orgSID, sid string) (*Session, error)

	// RecentMessages returns up to limit of the most recent messages,
	// ordered ascending by creation time.
	RecentMessages(ctx context.Context, sessionID uint, limit int) ([]*Message, error)

	// AppendMessages persists messages with server-assigned timestamps,
	// preserving the given order.
	AppendMessages(ctx context.Context, messages ...*Message) error
}
