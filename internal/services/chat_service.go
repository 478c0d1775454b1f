package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

const messageListLimit = 200

// ChatService is the conversation gateway. A conversation exists per matched
// task and is only visible to its two participants.
type ChatService struct {
	tasks         *repository.TaskRepository
	conversations *repository.ConversationRepository
}

func NewChatService(tasks *repository.TaskRepository, conversations *repository.ConversationRepository) *ChatService {
	return &ChatService{tasks: tasks, conversations: conversations}
}

// GetConversation returns (creating if needed) the conversation for a
// matched task.
func (s *ChatService) GetConversation(ctx context.Context, taskID, callerID string) (*model.Conversation, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("TASK_NOT_FOUND", "Task not found")
		}
		return nil, err
	}

	switch task.Status {
	case constants.TaskAssigned, constants.TaskWorkSubmitted, constants.TaskClosed:
	default:
		return nil, apperrors.InvalidTaskState("Conversation is only available for matched tasks")
	}

	if !task.IsParticipant(callerID) {
		return nil, apperrors.Forbidden("Only task participants can access this conversation")
	}

	return s.conversations.Ensure(ctx, task.ID, task.RequesterID, *task.AssignedFulfillerID)
}

func (s *ChatService) ListMessages(ctx context.Context, conversationID, callerID string) ([]model.Message, error) {
	conversation, err := s.findConversation(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	return s.conversations.ListMessages(ctx, conversation.ID, messageListLimit)
}

func (s *ChatService) SendMessage(ctx context.Context, conversationID, callerID, body string) (*model.Message, error) {
	body = strings.TrimSpace(body)
	if len(body) < 1 || len(body) > 2000 {
		return nil, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "body", Message: "body must be between 1 and 2000 characters",
		})
	}

	conversation, err := s.findConversation(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ConversationID: conversation.ID,
		SenderID:       callerID,
		Body:           body,
	}

	if err := s.conversations.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) findConversation(ctx context.Context, conversationID, callerID string) (*model.Conversation, error) {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("CONVERSATION_NOT_FOUND", "Conversation not found")
		}
		return nil, err
	}

	if conversation.RequesterID != callerID && conversation.FulfillerID != callerID {
		return nil, apperrors.Forbidden("Only task participants can access this conversation")
	}
	return conversation, nil
}
