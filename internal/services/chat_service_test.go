package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	repository "taskmarket.com/taskmarket/internal/repositories"
)

func TestChat_ConversationGating(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewOfferRepository(db),
		repository.NewConversationRepository(db),
	)
	chat := NewChatService(repository.NewTaskRepository(db), repository.NewConversationRepository(db))

	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, tasks, requester)

	if _, err := chat.GetConversation(ctx, task.ID, requester); errCode(err) != "INVALID_TASK_STATE" {
		t.Errorf("open task: expected INVALID_TASK_STATE, got %v", err)
	}

	offer, _ := tasks.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	if _, _, err := tasks.AcceptOffer(ctx, task.ID, offer.ID, requester); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	conversation, err := chat.GetConversation(ctx, task.ID, requester)
	if err != nil {
		t.Fatalf("get conversation failed: %v", err)
	}

	// Repeated access resolves to the same conversation created at accept.
	again, err := chat.GetConversation(ctx, task.ID, fulfiller)
	if err != nil {
		t.Fatalf("fulfiller access failed: %v", err)
	}
	if again.ID != conversation.ID {
		t.Errorf("expected one conversation per task, got %s and %s", conversation.ID, again.ID)
	}

	if _, err := chat.GetConversation(ctx, task.ID, uuid.NewString()); errCode(err) != "FORBIDDEN" {
		t.Errorf("outsider: expected FORBIDDEN, got %v", err)
	}
}

func TestChat_Messages(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewOfferRepository(db),
		repository.NewConversationRepository(db),
	)
	chat := NewChatService(repository.NewTaskRepository(db), repository.NewConversationRepository(db))

	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, tasks, requester)
	offer, _ := tasks.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	tasks.AcceptOffer(ctx, task.ID, offer.ID, requester)

	conversation, err := chat.GetConversation(ctx, task.ID, requester)
	if err != nil {
		t.Fatalf("get conversation failed: %v", err)
	}

	if _, err := chat.SendMessage(ctx, conversation.ID, requester, ""); errCode(err) != "VALIDATION_ERROR" {
		t.Errorf("empty body: expected VALIDATION_ERROR, got %v", err)
	}
	if _, err := chat.SendMessage(ctx, conversation.ID, uuid.NewString(), "hi there"); errCode(err) != "FORBIDDEN" {
		t.Errorf("outsider send: expected FORBIDDEN, got %v", err)
	}

	if _, err := chat.SendMessage(ctx, conversation.ID, requester, "when can you start?"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := chat.SendMessage(ctx, conversation.ID, fulfiller, "tomorrow morning"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	messages, err := chat.ListMessages(ctx, conversation.ID, requester)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Body != "when can you start?" {
		t.Errorf("messages should be oldest first, got %q first", messages[0].Body)
	}
}
