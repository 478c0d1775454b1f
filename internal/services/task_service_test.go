package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Offer{},
		&model.Conversation{},
		&model.Message{},
		&model.Review{},
		&model.Report{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	service := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewOfferRepository(db),
		repository.NewConversationRepository(db),
	)
	return service, db
}

func mustCreateTask(t *testing.T, s *TaskService, requesterID string) *model.Task {
	t.Helper()
	task, err := s.Create(context.Background(), requesterID, CreateTaskInput{
		Title:        "Fix my leaking tap",
		Description:  "The kitchen tap has been dripping for a week.",
		BudgetAmount: 300,
		Currency:     "inr",
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func errCode(err error) string {
	return apperrors.Code(err)
}

func TestCreateTask_Validation(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	cases := []struct {
		name string
		in   CreateTaskInput
	}{
		{"short title", CreateTaskInput{Title: "abc", Description: "long enough description", BudgetAmount: 100}},
		{"short description", CreateTaskInput{Title: "Valid title", Description: "short", BudgetAmount: 100}},
		{"zero budget", CreateTaskInput{Title: "Valid title", Description: "long enough description", BudgetAmount: 0}},
		{"negative budget", CreateTaskInput{Title: "Valid title", Description: "long enough description", BudgetAmount: -5}},
		{"bad currency", CreateTaskInput{Title: "Valid title", Description: "long enough description", BudgetAmount: 100, Currency: "EURO"}},
	}

	for _, tc := range cases {
		if _, err := service.Create(ctx, requester, tc.in); errCode(err) != "VALIDATION_ERROR" {
			t.Errorf("%s: expected VALIDATION_ERROR, got %v", tc.name, err)
		}
	}
}

func TestCreateTask_NormalizesCurrency(t *testing.T) {
	service, _ := newTaskService(t)
	task := mustCreateTask(t, service, uuid.NewString())

	if task.Currency != "INR" {
		t.Errorf("expected currency INR, got %s", task.Currency)
	}
	if task.Status != constants.TaskOpen {
		t.Errorf("expected status open, got %s", task.Status)
	}
}

func TestSubmitOffer_AmountBoundary(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	task := mustCreateTask(t, service, uuid.NewString())

	if _, err := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 0, "I can fix this"); errCode(err) != "VALIDATION_ERROR" {
		t.Errorf("amount 0: expected VALIDATION_ERROR, got %v", err)
	}
	if _, err := service.SubmitOffer(ctx, task.ID, uuid.NewString(), -10, "I can fix this"); errCode(err) != "VALIDATION_ERROR" {
		t.Errorf("negative amount: expected VALIDATION_ERROR, got %v", err)
	}

	offer, err := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 1, "I can fix this")
	if err != nil {
		t.Fatalf("amount 1 should succeed: %v", err)
	}
	if offer.Status != constants.OfferPending {
		t.Errorf("expected pending offer, got %s", offer.Status)
	}
}

func TestSubmitOffer_SelfOfferRejected(t *testing.T) {
	service, _ := newTaskService(t)
	requester := uuid.NewString()
	task := mustCreateTask(t, service, requester)

	if _, err := service.SubmitOffer(context.Background(), task.ID, requester, 100, "my own task"); errCode(err) != "INVALID_OFFER" {
		t.Errorf("expected INVALID_OFFER, got %v", err)
	}
}

func TestSubmitOffer_DuplicateRejected(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	task := mustCreateTask(t, service, uuid.NewString())
	fulfiller := uuid.NewString()

	if _, err := service.SubmitOffer(ctx, task.ID, fulfiller, 100, "first offer"); err != nil {
		t.Fatalf("first offer failed: %v", err)
	}
	if _, err := service.SubmitOffer(ctx, task.ID, fulfiller, 120, "second offer"); errCode(err) != "INVALID_OFFER" {
		t.Errorf("expected INVALID_OFFER, got %v", err)
	}
}

func TestAcceptOffer_AssignsTask(t *testing.T) {
	service, db := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, err := service.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	if err != nil {
		t.Fatalf("submit offer failed: %v", err)
	}

	task, offer, err = service.AcceptOffer(ctx, task.ID, offer.ID, requester)
	if err != nil {
		t.Fatalf("accept offer failed: %v", err)
	}

	if task.Status != constants.TaskAssigned {
		t.Errorf("expected status assigned, got %s", task.Status)
	}
	if task.AssignedFulfillerID == nil || *task.AssignedFulfillerID != fulfiller {
		t.Errorf("expected assigned fulfiller %s, got %v", fulfiller, task.AssignedFulfillerID)
	}
	if task.AcceptedOfferID == nil || *task.AcceptedOfferID != offer.ID {
		t.Errorf("expected accepted offer %s, got %v", offer.ID, task.AcceptedOfferID)
	}
	if offer.Status != constants.OfferAccepted {
		t.Errorf("expected offer accepted, got %s", offer.Status)
	}

	var conversation model.Conversation
	if err := db.First(&conversation, "task_id = ?", task.ID).Error; err != nil {
		t.Fatalf("conversation should exist after acceptance: %v", err)
	}
	if conversation.RequesterID != requester || conversation.FulfillerID != fulfiller {
		t.Errorf("conversation participants wrong: %+v", conversation)
	}
}

func TestAcceptOffer_RejectsSiblings(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	o1, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "offer number one")
	o2, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 220, "offer number two")

	if _, _, err := service.AcceptOffer(ctx, task.ID, o1.ID, requester); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, offers, err := service.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	for _, offer := range offers {
		switch offer.ID {
		case o1.ID:
			if offer.Status != constants.OfferAccepted {
				t.Errorf("winning offer should be accepted, got %s", offer.Status)
			}
		case o2.ID:
			if offer.Status != constants.OfferRejected {
				t.Errorf("sibling offer should be rejected, got %s", offer.Status)
			}
		}
	}
}

func TestAcceptOffer_OnAssignedTaskFailsWithoutMutation(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	winner, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "winning offer")
	loser, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 210, "losing offer")

	assigned, _, err := service.AcceptOffer(ctx, task.ID, winner.ID, requester)
	if err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	if _, _, err := service.AcceptOffer(ctx, task.ID, loser.ID, requester); errCode(err) != "INVALID_TASK_STATE" {
		t.Fatalf("expected INVALID_TASK_STATE, got %v", err)
	}

	after, offers, err := service.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if after.Status != constants.TaskAssigned || *after.AcceptedOfferID != winner.ID {
		t.Errorf("losing accept mutated the task: %+v", after)
	}
	for _, offer := range offers {
		if offer.ID == loser.ID && offer.Status != constants.OfferRejected {
			t.Errorf("loser offer status changed unexpectedly: %s", offer.Status)
		}
	}
	if after.Version != assigned.Version {
		t.Errorf("task version changed by losing accept: %d vs %d", after.Version, assigned.Version)
	}
}

func TestAcceptOffer_ConcurrentSingleWinner(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)

	const offerCount = 10
	offerIDs := make([]string, offerCount)
	for i := 0; i < offerCount; i++ {
		offer, err := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "competing offer here")
		if err != nil {
			t.Fatalf("submit offer %d failed: %v", i, err)
		}
		offerIDs[i] = offer.ID
	}

	var wg sync.WaitGroup
	wg.Add(offerCount)
	errs := make(chan error, offerCount)

	for _, offerID := range offerIDs {
		go func(id string) {
			defer wg.Done()
			_, _, err := service.AcceptOffer(context.Background(), task.ID, id, requester)
			errs <- err
		}(offerID)
	}

	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		code := errCode(err)
		if code != "INVALID_TASK_STATE" && code != "INVALID_OFFER_STATE" {
			t.Errorf("unexpected race loser error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 winning accept, got %d", successes)
	}

	_, offers, _ := service.Get(ctx, task.ID)
	accepted := 0
	for _, offer := range offers {
		if offer.Status == constants.OfferAccepted {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly 1 accepted offer, got %d", accepted)
	}
}

func TestFullWorkflow_SubmitWorkAndConfirm(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	if _, _, err := service.AcceptOffer(ctx, task.ID, offer.ID, requester); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	task, err := service.SubmitWork(ctx, task.ID, fulfiller)
	if err != nil {
		t.Fatalf("submit work failed: %v", err)
	}
	if task.Status != constants.TaskWorkSubmitted || task.WorkSubmittedAt == nil {
		t.Fatalf("expected work_submitted with timestamp, got %+v", task)
	}

	task, err = service.ConfirmOffline(ctx, task.ID, requester)
	if err != nil {
		t.Fatalf("requester confirm failed: %v", err)
	}
	if task.Status != constants.TaskWorkSubmitted {
		t.Errorf("one confirmation must not close the task, got %s", task.Status)
	}
	if !task.RequesterConfirmedOffline || task.FulfillerConfirmedOffline {
		t.Errorf("unexpected confirmation flags: %+v", task)
	}

	task, err = service.ConfirmOffline(ctx, task.ID, fulfiller)
	if err != nil {
		t.Fatalf("fulfiller confirm failed: %v", err)
	}
	if task.Status != constants.TaskClosed || task.ClosedAt == nil {
		t.Fatalf("expected closed with closedAt, got %+v", task)
	}
	if !task.RequesterConfirmedOffline || !task.FulfillerConfirmedOffline {
		t.Errorf("closed task must have both flags set: %+v", task)
	}
}

func TestConfirmOffline_IdempotentPerSide(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)
	service.SubmitWork(ctx, task.ID, fulfiller)

	first, err := service.ConfirmOffline(ctx, task.ID, requester)
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	second, err := service.ConfirmOffline(ctx, task.ID, requester)
	if err != nil {
		t.Fatalf("repeat confirm should be a no-op success: %v", err)
	}
	if second.Status != first.Status || second.ClosedAt != nil {
		t.Errorf("repeat confirm changed state: %+v", second)
	}

	if _, err := service.ConfirmOffline(ctx, task.ID, fulfiller); err != nil {
		t.Fatalf("fulfiller confirm failed: %v", err)
	}

	// Once closed, further confirmations are a state error.
	if _, err := service.ConfirmOffline(ctx, task.ID, requester); errCode(err) != "INVALID_TASK_STATE" {
		t.Errorf("confirm after close: expected INVALID_TASK_STATE, got %v", err)
	}
}

func TestConfirmOffline_ConcurrentBothParties(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)
	service.SubmitWork(ctx, task.ID, fulfiller)

	var wg sync.WaitGroup
	wg.Add(2)
	errs := make(chan error, 2)

	for _, party := range []string{requester, fulfiller} {
		go func(userID string) {
			defer wg.Done()
			_, err := service.ConfirmOffline(context.Background(), task.ID, userID)
			errs <- err
		}(party)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent confirm failed: %v", err)
		}
	}

	final, _, err := service.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if final.Status != constants.TaskClosed || final.ClosedAt == nil {
		t.Fatalf("expected closed task, got %+v", final)
	}
}

func TestConfirmOffline_NonParticipantForbidden(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 250, "I can do it for 250")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)
	service.SubmitWork(ctx, task.ID, fulfiller)

	if _, err := service.ConfirmOffline(ctx, task.ID, uuid.NewString()); errCode(err) != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}
}

func TestCancelTask_RejectsPendingOffers(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	o1, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "offer number one")

	cancelled, err := service.Cancel(ctx, task.ID, requester)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.TaskCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %+v", cancelled)
	}

	_, offers, _ := service.Get(ctx, task.ID)
	for _, offer := range offers {
		if offer.ID == o1.ID && offer.Status != constants.OfferRejected {
			t.Errorf("pending offer should be rejected on cancel, got %s", offer.Status)
		}
	}

	if _, err := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 100, "too late offer"); errCode(err) != "INVALID_TASK_STATE" {
		t.Errorf("offer on cancelled task: expected INVALID_TASK_STATE, got %v", err)
	}
}

func TestCancelTask_OnlyRequesterAndOnlyOpen(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)

	if _, err := service.Cancel(ctx, task.ID, uuid.NewString()); errCode(err) != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}

	offer, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "offer number one")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)

	if _, err := service.Cancel(ctx, task.ID, requester); errCode(err) != "INVALID_TASK_STATE" {
		t.Errorf("expected INVALID_TASK_STATE, got %v", err)
	}
}

func TestWithdrawOffer(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, uuid.NewString())
	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 200, "offer to withdraw")

	if _, err := service.WithdrawOffer(ctx, task.ID, offer.ID, uuid.NewString()); errCode(err) != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN for non-owner, got %v", err)
	}

	withdrawn, err := service.WithdrawOffer(ctx, task.ID, offer.ID, fulfiller)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if withdrawn.Status != constants.OfferWithdrawn || withdrawn.WithdrawnAt == nil {
		t.Fatalf("expected withdrawn with timestamp, got %+v", withdrawn)
	}

	if _, err := service.WithdrawOffer(ctx, task.ID, offer.ID, fulfiller); errCode(err) != "INVALID_OFFER_STATE" {
		t.Errorf("expected INVALID_OFFER_STATE on repeat withdraw, got %v", err)
	}
}

func TestModerationHold_BlocksOffersAndAcceptance(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "pre-hold offer")

	held, err := service.RequestModification(ctx, task.ID, "Please add more detail to the description")
	if err != nil {
		t.Fatalf("request modification failed: %v", err)
	}
	if !held.RequiresModification || held.ModificationRequestedAt == nil {
		t.Fatalf("hold not recorded: %+v", held)
	}

	if _, err := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 150, "offer during hold"); errCode(err) != "TASK_REQUIRES_MODIFICATION" {
		t.Errorf("expected TASK_REQUIRES_MODIFICATION, got %v", err)
	}
	if _, _, err := service.AcceptOffer(ctx, task.ID, offer.ID, requester); errCode(err) != "TASK_REQUIRES_MODIFICATION" {
		t.Errorf("expected TASK_REQUIRES_MODIFICATION, got %v", err)
	}

	newTitle := "Fix my leaking tap properly"
	updated, err := service.Update(ctx, task.ID, requester, UpdateTaskInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.RequiresModification || updated.ModificationNote != "" || updated.ModificationRequestedAt != nil {
		t.Errorf("edit should clear the moderation hold: %+v", updated)
	}

	if _, _, err := service.AcceptOffer(ctx, task.ID, offer.ID, requester); err != nil {
		t.Errorf("accept after hold cleared should succeed: %v", err)
	}
}

func TestUpdateTask_Preconditions(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	newTitle := "A different valid title"

	if _, err := service.Update(ctx, task.ID, uuid.NewString(), UpdateTaskInput{Title: &newTitle}); errCode(err) != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}
	if _, err := service.Update(ctx, task.ID, requester, UpdateTaskInput{}); errCode(err) != "VALIDATION_ERROR" {
		t.Errorf("empty update: expected VALIDATION_ERROR, got %v", err)
	}

	offer, _ := service.SubmitOffer(ctx, task.ID, uuid.NewString(), 200, "offer number one")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)

	if _, err := service.Update(ctx, task.ID, requester, UpdateTaskInput{Title: &newTitle}); errCode(err) != "INVALID_TASK_STATE" {
		t.Errorf("expected INVALID_TASK_STATE, got %v", err)
	}
}

func TestSubmitWork_Preconditions(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)

	if _, err := service.SubmitWork(ctx, task.ID, fulfiller); errCode(err) != "FORBIDDEN" {
		t.Errorf("unassigned task: expected FORBIDDEN, got %v", err)
	}

	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 200, "offer number one")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)

	if _, err := service.SubmitWork(ctx, task.ID, requester); errCode(err) != "FORBIDDEN" {
		t.Errorf("requester submit: expected FORBIDDEN, got %v", err)
	}

	if _, err := service.SubmitWork(ctx, task.ID, fulfiller); err != nil {
		t.Fatalf("submit work failed: %v", err)
	}
	if _, err := service.SubmitWork(ctx, task.ID, fulfiller); errCode(err) != "INVALID_TASK_STATE" {
		t.Errorf("repeat submit: expected INVALID_TASK_STATE, got %v", err)
	}
}

func TestAcceptOffer_MismatchedPairIsNotFound(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	other := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, other.ID, uuid.NewString(), 200, "offer on other task")

	if _, _, err := service.AcceptOffer(ctx, task.ID, offer.ID, requester); errCode(err) != "OFFER_NOT_FOUND" {
		t.Errorf("expected OFFER_NOT_FOUND, got %v", err)
	}
}

func TestAdminDelete_Cascades(t *testing.T) {
	service, db := newTaskService(t)
	ctx := context.Background()
	requester := uuid.NewString()
	fulfiller := uuid.NewString()

	task := mustCreateTask(t, service, requester)
	offer, _ := service.SubmitOffer(ctx, task.ID, fulfiller, 200, "offer number one")
	service.AcceptOffer(ctx, task.ID, offer.ID, requester)

	var conversation model.Conversation
	if err := db.First(&conversation, "task_id = ?", task.ID).Error; err != nil {
		t.Fatalf("conversation missing: %v", err)
	}
	message := model.Message{ID: uuid.NewString(), ConversationID: conversation.ID, SenderID: requester, Body: "hello"}
	if err := db.Create(&message).Error; err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}

	if err := service.AdminDelete(ctx, task.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	for name, dest := range map[string]interface{}{
		"task":         &model.Task{},
		"offer":        &model.Offer{},
		"conversation": &model.Conversation{},
		"message":      &model.Message{},
	} {
		var count int64
		var err error
		switch name {
		case "task":
			err = db.Model(dest).Where("id = ?", task.ID).Count(&count).Error
		case "offer":
			err = db.Model(dest).Where("task_id = ?", task.ID).Count(&count).Error
		case "conversation":
			err = db.Model(dest).Where("task_id = ?", task.ID).Count(&count).Error
		case "message":
			err = db.Model(dest).Where("conversation_id = ?", conversation.ID).Count(&count).Error
		}
		if err != nil {
			t.Fatalf("count %s failed: %v", name, err)
		}
		if count != 0 {
			t.Errorf("%s not deleted by cascade", name)
		}
	}

	if err := service.AdminDelete(ctx, task.ID); errCode(err) != "TASK_NOT_FOUND" {
		t.Errorf("repeat delete: expected TASK_NOT_FOUND, got %v", err)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	service, _ := newTaskService(t)

	_, _, err := service.Get(context.Background(), uuid.NewString())
	if errCode(err) != "TASK_NOT_FOUND" {
		t.Errorf("expected TASK_NOT_FOUND, got %v", err)
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != 404 {
		t.Errorf("expected status 404, got %v", err)
	}
}
