package chat

import (
	"fmt"
	"time"

	"beacon/internal/shared/biztime"
	"beacon/internal/shared/id"
)

// Session is one assistant conversation scoped to an organization and a
// principal. Messages within a session are append-only and strictly ordered
// by creation time.
type Session struct {
	id        uint
	sid       string
	orgSID    string
	userID    string
	createdAt time.Time
}

func NewSession(orgSID, userID string) (*Session, error) {
	if orgSID == "" {
		return nil, fmt.Errorf("organization SID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Session{
		sid:       id.NewChatSessionID(),
		orgSID:    orgSID,
		userID:    userID,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructSession(sid uint, externalSID, orgSID, userID string, createdAt time.Time) (*Session, error) {
	if sid == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	return &Session{
		id:        sid,
		sid:       externalSID,
		orgSID:    orgSID,
		userID:    userID,
		createdAt: createdAt,
	}, nil
}

func (s *Session) ID() uint {
	return s.id
}

func (s *Session) SID() string {
	return s.sid
}

func (s *Session) OrgSID() string {
	return s.orgSID
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// SetID sets the internal ID (only for persistence layer use)
func (s *Session) SetID(sid uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if sid == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = sid
	return nil
}
