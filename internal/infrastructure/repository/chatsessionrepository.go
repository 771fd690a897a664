package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"beacon/internal/domain/chat"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/biztime"
	"beacon/internal/shared/logger"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewChatSessionRepository(db *gorm.DB, logger logger.Interface) chat.SessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *chat.Session) error {
	model := sessionToModel(session)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create chat session", "error", err, "session_sid", session.SID())
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	if session.ID() == 0 && model.ID > 0 {
		if err := session.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *ChatSessionRepositoryImpl) GetByOrgAndSID(ctx context.Context, orgSID, sid string) (*chat.Session, error) {
	var model models.ChatSessionModel
	err := r.db.WithContext(ctx).
		Where("org_sid = ? AND sid = ?", orgSID, sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		r.logger.Errorw("failed to get chat session", "error", err, "org_sid", orgSID, "session_sid", sid)
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	return sessionToEntity(&model)
}

// RecentMessages loads up to limit of the newest messages and returns them in
// ascending creation order, ready to feed the model as a transcript.
func (r *ChatSessionRepositoryImpl) RecentMessages(ctx context.Context, sessionID uint, limit int) ([]*chat.Message, error) {
	if limit <= 0 || limit > chat.HistoryLimit {
		limit = chat.HistoryLimit
	}

	var modelList []models.ChatMessageModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to load messages", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	// Reverse into ascending order.
	messages := make([]*chat.Message, len(modelList))
	for i := range modelList {
		msg, err := messageToEntity(&modelList[len(modelList)-1-i])
		if err != nil {
			return nil, err
		}
		messages[i] = msg
	}

	return messages, nil
}

// AppendMessages persists messages in one transaction, assigning timestamps
// that preserve the given order even within the same wall-clock instant.
func (r *ChatSessionRepositoryImpl) AppendMessages(ctx context.Context, messages ...*chat.Message) error {
	if len(messages) == 0 {
		return nil
	}

	now := biztime.NowUTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, msg := range messages {
			model := &models.ChatMessageModel{
				SID:       msg.SID(),
				SessionID: msg.SessionID(),
				Role:      string(msg.Role()),
				Content:   msg.Content(),
				CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			}
			if err := tx.Create(model).Error; err != nil {
				r.logger.Errorw("failed to append message", "error", err, "session_id", msg.SessionID())
				return fmt.Errorf("failed to append message: %w", err)
			}
		}
		return nil
	})
}

func sessionToModel(session *chat.Session) *models.ChatSessionModel {
	return &models.ChatSessionModel{
		ID:        session.ID(),
		SID:       session.SID(),
		OrgSID:    session.OrgSID(),
		UserID:    session.UserID(),
		CreatedAt: session.CreatedAt(),
	}
}

func sessionToEntity(model *models.ChatSessionModel) (*chat.Session, error) {
	return chat.ReconstructSession(
		model.ID,
		model.SID,
		model.OrgSID,
		model.UserID,
		model.CreatedAt,
	)
}

func messageToEntity(model *models.ChatMessageModel) (*chat.Message, error) {
	return chat.ReconstructMessage(
		model.ID,
		model.SID,
		model.SessionID,
		chat.Role(model.Role),
		model.Content,
		model.CreatedAt,
	)
}
