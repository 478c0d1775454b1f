package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

const (
	publicListLimit = 100
	mineListLimit   = 200
)

// TaskService owns the task lifecycle state machine: task creation and
// edits, the offer protocol, work submission, the mutual offline
// confirmation gate and moderation actions. Every mutation either passes all
// preconditions or fails with a classified error; races on state transitions
// are arbitrated by the repository's conditional updates.
type TaskService struct {
	tasks         *repository.TaskRepository
	offers        *repository.OfferRepository
	conversations *repository.ConversationRepository
}

func NewTaskService(
	tasks *repository.TaskRepository,
	offers *repository.OfferRepository,
	conversations *repository.ConversationRepository,
) *TaskService {
	return &TaskService{
		tasks:         tasks,
		offers:        offers,
		conversations: conversations,
	}
}

type CreateTaskInput struct {
	Title        string
	Description  string
	BudgetAmount float64
	Currency     string
}

type UpdateTaskInput struct {
	Title        *string
	Description  *string
	BudgetAmount *float64
	Currency     *string
}

// TaskSnapshot is the read-only view exposed to the review subsystem.
type TaskSnapshot struct {
	Status              constants.TaskStatus
	RequesterID         string
	AssignedFulfillerID *string
}

func (s *TaskService) Create(ctx context.Context, requesterID string, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validateBudget(in.BudgetAmount); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "INR"
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}

	task := &model.Task{
		RequesterID:  requesterID,
		Title:        title,
		Description:  description,
		BudgetAmount: in.BudgetAmount,
		Currency:     currency,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, status, q string) ([]model.Task, error) {
	if status != "" && !constants.ValidTaskStatus(status) {
		status = ""
	}
	return s.tasks.List(ctx, status, strings.TrimSpace(q), publicListLimit)
}

func (s *TaskService) ListMine(ctx context.Context, userID string) ([]model.Task, error) {
	return s.tasks.ListForUser(ctx, userID, mineListLimit)
}

// Get returns the task together with its offers, newest offer first.
func (s *TaskService) Get(ctx context.Context, taskID string) (*model.Task, []model.Offer, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	offers, err := s.offers.ListForTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	return task, offers, nil
}

// Snapshot exposes the fields the review subsystem gates on.
func (s *TaskService) Snapshot(ctx context.Context, taskID string) (*TaskSnapshot, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskSnapshot{
		Status:              task.Status,
		RequesterID:         task.RequesterID,
		AssignedFulfillerID: task.AssignedFulfillerID,
	}, nil
}

// Update edits an open task's fields. Any successful edit clears a pending
// moderation hold, since the edit is the requester's response to it.
func (s *TaskService) Update(ctx context.Context, taskID, callerID string, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.RequesterID != callerID {
		return nil, apperrors.Forbidden("Only the task requester can perform this action")
	}
	if task.Status != constants.TaskOpen {
		return nil, apperrors.InvalidTaskState("Only open tasks can be edited")
	}

	if in.Title == nil && in.Description == nil && in.BudgetAmount == nil && in.Currency == nil {
		return nil, apperrors.Validation("At least one field is required")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		task.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		task.Description = description
	}
	if in.BudgetAmount != nil {
		if err := validateBudget(*in.BudgetAmount); err != nil {
			return nil, err
		}
		task.BudgetAmount = *in.BudgetAmount
	}
	if in.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if err := validateCurrency(currency); err != nil {
			return nil, err
		}
		task.Currency = currency
	}

	task.RequiresModification = false
	task.ModificationNote = ""
	task.ModificationRequestedAt = nil

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.InvalidTaskState("Task was modified concurrently")
		}
		return nil, err
	}
	return task, nil
}

// Cancel moves an open task to cancelled and rejects its pending offers.
func (s *TaskService) Cancel(ctx context.Context, taskID, callerID string) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.RequesterID != callerID {
		return nil, apperrors.Forbidden("Only the task requester can perform this action")
	}
	if task.Status != constants.TaskOpen {
		return nil, apperrors.InvalidTaskState("Only open tasks can be cancelled")
	}

	if err := s.tasks.Cancel(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.InvalidTaskState("Only open tasks can be cancelled")
		}
		return nil, err
	}

	return s.findTask(ctx, taskID)
}

// RequestModification places a moderation hold on an open task. While the
// hold is set, new offers and offer acceptance are blocked until the
// requester edits the task.
func (s *TaskService) RequestModification(ctx context.Context, taskID, note string) (*model.Task, error) {
	note = strings.TrimSpace(note)
	if len(note) < 5 || len(note) > 500 {
		return nil, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "note", Message: "note must be between 5 and 500 characters",
		})
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != constants.TaskOpen {
		return nil, apperrors.InvalidTaskState("Only open tasks can be sent for modification")
	}

	now := time.Now().UTC()
	task.RequiresModification = true
	task.ModificationNote = note
	task.ModificationRequestedAt = &now

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.InvalidTaskState("Task was modified concurrently")
		}
		return nil, err
	}
	return task, nil
}

// SubmitOffer creates a pending offer on an open task. A fulfiller gets one
// offer per task; the requester cannot bid on their own task.
func (s *TaskService) SubmitOffer(ctx context.Context, taskID, fulfillerID string, amount float64, message string) (*model.Offer, error) {
	message = strings.TrimSpace(message)
	if amount < 1 {
		return nil, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "amount", Message: "amount must be at least 1",
		})
	}
	if len(message) < 5 || len(message) > 1200 {
		return nil, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "message", Message: "message must be between 5 and 1200 characters",
		})
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != constants.TaskOpen {
		return nil, apperrors.InvalidTaskState("Offers can only be submitted for open tasks")
	}
	if task.RequiresModification {
		return nil, apperrors.TaskRequiresModification()
	}
	if task.RequesterID == fulfillerID {
		return nil, apperrors.InvalidOffer("Requester cannot submit an offer on own task")
	}

	exists, err := s.offers.HasOffer(ctx, taskID, fulfillerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.InvalidOffer("An offer for this task already exists")
	}

	offer := &model.Offer{
		TaskID:      taskID,
		FulfillerID: fulfillerID,
		Amount:      amount,
		Message:     message,
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		if errors.Is(err, repository.ErrDuplicateOffer) {
			return nil, apperrors.InvalidOffer("An offer for this task already exists")
		}
		return nil, err
	}
	return offer, nil
}

// WithdrawOffer moves the caller's pending offer to withdrawn.
func (s *TaskService) WithdrawOffer(ctx context.Context, taskID, offerID, callerID string) (*model.Offer, error) {
	offer, err := s.findOffer(ctx, offerID, taskID)
	if err != nil {
		return nil, err
	}
	if offer.FulfillerID != callerID {
		return nil, apperrors.Forbidden("Only the offer owner can withdraw this offer")
	}
	if offer.Status != constants.OfferPending {
		return nil, apperrors.InvalidOfferState("Only pending offers can be withdrawn")
	}

	if err := s.offers.Withdraw(ctx, offerID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.InvalidOfferState("Only pending offers can be withdrawn")
		}
		return nil, err
	}

	return s.findOffer(ctx, offerID, taskID)
}

// AcceptOffer assigns the task to the offer's fulfiller. The transition,
// the acceptance of the target offer and the rejection of every sibling run
// as one atomic unit; of two racing accepts only the first to observe the
// open status wins and the loser fails with a state conflict. Acceptance
// also ensures the task's conversation exists.
func (s *TaskService) AcceptOffer(ctx context.Context, taskID, offerID, callerID string) (*model.Task, *model.Offer, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if task.RequesterID != callerID {
		return nil, nil, apperrors.Forbidden("Only the task requester can perform this action")
	}
	if task.Status != constants.TaskOpen {
		return nil, nil, apperrors.InvalidTaskState("Only open tasks can accept offers")
	}
	if task.RequiresModification {
		return nil, nil, apperrors.TaskRequiresModification()
	}

	offer, err := s.findOffer(ctx, offerID, taskID)
	if err != nil {
		return nil, nil, err
	}
	if offer.Status != constants.OfferPending {
		return nil, nil, apperrors.InvalidOfferState("Only pending offers can be accepted")
	}

	if err := s.tasks.Assign(ctx, taskID, offer); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, nil, apperrors.InvalidTaskState("Only open tasks can accept offers")
		}
		return nil, nil, err
	}

	if _, err := s.conversations.Ensure(ctx, taskID, task.RequesterID, offer.FulfillerID); err != nil {
		return nil, nil, err
	}

	task, err = s.findTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	offer, err = s.findOffer(ctx, offerID, taskID)
	if err != nil {
		return nil, nil, err
	}
	return task, offer, nil
}

// SubmitWork marks an assigned task's work as delivered.
func (s *TaskService) SubmitWork(ctx context.Context, taskID, callerID string) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedFulfillerID == nil || *task.AssignedFulfillerID != callerID {
		return nil, apperrors.Forbidden("Only the assigned fulfiller can perform this action")
	}
	if task.Status != constants.TaskAssigned {
		return nil, apperrors.InvalidTaskState("Only assigned tasks can be marked as work submitted")
	}

	if err := s.tasks.SubmitWork(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.InvalidTaskState("Only assigned tasks can be marked as work submitted")
		}
		return nil, err
	}

	return s.findTask(ctx, taskID)
}

// ConfirmOffline records the caller's acknowledgment that work and payment
// happened off-platform. When both parties have confirmed, the task closes.
// Re-confirming an already confirmed side is a no-op success; confirming a
// closed task is a state error.
func (s *TaskService) ConfirmOffline(ctx context.Context, taskID, callerID string) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	byRequester := task.RequesterID == callerID
	byFulfiller := task.AssignedFulfillerID != nil && *task.AssignedFulfillerID == callerID

	if !byRequester && !byFulfiller {
		return nil, apperrors.Forbidden("Only task participants can confirm offline completion/payment")
	}
	if task.Status != constants.TaskWorkSubmitted {
		return nil, apperrors.InvalidTaskState("Task must be in work_submitted before confirmations")
	}

	if err := s.tasks.ConfirmOffline(ctx, taskID, byRequester); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apperrors.InvalidTaskState("Task must be in work_submitted before confirmations")
		}
		return nil, err
	}

	return s.findTask(ctx, taskID)
}

// AdminDelete irreversibly removes the task with its offers, conversation
// and messages.
func (s *TaskService) AdminDelete(ctx context.Context, taskID string) error {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return err
	}
	return s.tasks.DeleteCascade(ctx, taskID)
}

func (s *TaskService) findTask(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("TASK_NOT_FOUND", "Task not found")
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) findOffer(ctx context.Context, offerID, taskID string) (*model.Offer, error) {
	offer, err := s.offers.FindByIDForTask(ctx, offerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("OFFER_NOT_FOUND", "Offer not found")
		}
		return nil, err
	}
	return offer, nil
}

func validateTitle(title string) error {
	if len(title) < 5 || len(title) > 140 {
		return apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "title", Message: "title must be between 5 and 140 characters",
		})
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) < 10 || len(description) > 2500 {
		return apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "description", Message: "description must be between 10 and 2500 characters",
		})
	}
	return nil
}

func validateBudget(amount float64) error {
	if amount < 1 {
		return apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "budgetAmount", Message: "budgetAmount must be at least 1",
		})
	}
	return nil
}

func validateCurrency(currency string) error {
	if len(currency) != 3 {
		return apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "currency", Message: "currency must be a 3-letter code",
		})
	}
	for _, r := range currency {
		if !unicode.IsLetter(r) {
			return apperrors.Validation("Invalid input", apperrors.Detail{
				Field: "currency", Message: "currency must be a 3-letter code",
			})
		}
	}
	return nil
}
