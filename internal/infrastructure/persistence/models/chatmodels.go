package models

import (
	"time"

	"beacon/internal/shared/constants"
)

// ChatSessionModel represents the database persistence model for chat sessions
type ChatSessionModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sess_xxx"`
	OrgSID    string `gorm:"column:org_sid;not null;size:50;index:idx_org_session"`
	UserID    string `gorm:"not null;size:50;index:idx_user_session"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (ChatSessionModel) TableName() string {
	return constants.TableChatSessions
}

// ChatMessageModel represents the database persistence model for chat messages.
// CreatedAt carries the server-assigned timestamp that orders the transcript.
type ChatMessageModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: msg_xxx"`
	SessionID uint   `gorm:"not null;index:idx_session_created,priority:1"`
	Role      string `gorm:"not null;size:20"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_session_created,priority:2"`
}

// TableName specifies the table name for GORM
func (ChatMessageModel) TableName() string {
	return constants.TableChatMessages
}
