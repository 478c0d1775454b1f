package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "taskmarket.com/taskmarket/internal/models"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Ensure upserts the single conversation for a task. The unique task_id
// index arbitrates concurrent creators; the loser re-reads the winner's row.
func (r *ConversationRepository) Ensure(ctx context.Context, taskID, requesterID, fulfillerID string) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).First(&conversation, "task_id = ?", taskID).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = model.Conversation{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		RequesterID: requesterID,
		FulfillerID: fulfillerID,
	}

	if err := r.db.WithContext(ctx).Create(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing model.Conversation
			if err := r.db.WithContext(ctx).First(&existing, "task_id = ?", taskID).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &conversation, nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) FindByTaskID(ctx context.Context, taskID string) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "task_id = ?", taskID).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	message.ID = uuid.NewString()
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").Limit(limit).
		Find(&messages).Error
	return messages, err
}
