package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
)

// ErrStateConflict is returned when a conditional state transition matched no
// row: either the entity moved to another state concurrently or the caller's
// view of it was stale.
var ErrStateConflict = errors.New("state transition conflict")

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.ID = uuid.NewString()
	task.Status = constants.TaskOpen
	task.Version = 1
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns public tasks newest first, optionally filtered by status and
// a case-insensitive substring over title/description.
func (r *TaskRepository) List(ctx context.Context, status, q string, limit int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var tasks []model.Task
	err := query.Order("created_at desc").Limit(limit).Find(&tasks).Error
	return tasks, err
}

// ListForUser returns tasks the user posted or was assigned to, most
// recently updated first.
func (r *TaskRepository) ListForUser(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR assigned_fulfiller_id = ?", userID, userID).
		Order("updated_at desc").Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// Update writes the mutable task fields guarded by the version column.
// A stale version yields ErrStateConflict.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":                     task.Title,
			"description":               task.Description,
			"budget_amount":             task.BudgetAmount,
			"currency":                  task.Currency,
			"requires_modification":     task.RequiresModification,
			"modification_note":         task.ModificationNote,
			"modification_requested_at": task.ModificationRequestedAt,
			"version":                   gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}

	task.Version++
	return nil
}

// Assign performs the accept-offer critical region as one transaction:
// open -> assigned on the task, pending -> accepted on the target offer, and
// pending -> rejected on every sibling. Any guard that matches no row aborts
// the whole transaction with ErrStateConflict.
func (r *TaskRepository) Assign(ctx context.Context, taskID string, offer *model.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("id = ? AND status = ? AND requires_modification = ?", taskID, constants.TaskOpen, false).
			Updates(map[string]interface{}{
				"status":                      constants.TaskAssigned,
				"assigned_fulfiller_id":       offer.FulfillerID,
				"accepted_offer_id":           offer.ID,
				"requester_confirmed_offline": false,
				"fulfiller_confirmed_offline": false,
				"version":                     gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		res = tx.Model(&model.Offer{}).
			Where("id = ? AND task_id = ? AND status = ?", offer.ID, taskID, constants.OfferPending).
			Update("status", constants.OfferAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		return tx.Model(&model.Offer{}).
			Where("task_id = ? AND status = ? AND id <> ?", taskID, constants.OfferPending, offer.ID).
			Update("status", constants.OfferRejected).Error
	})
}

// Cancel moves an open task to cancelled and rejects its pending offers in
// the same transaction.
func (r *TaskRepository) Cancel(ctx context.Context, taskID string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("id = ? AND status = ?", taskID, constants.TaskOpen).
			Updates(map[string]interface{}{
				"status":       constants.TaskCancelled,
				"cancelled_at": now,
				"version":      gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		return tx.Model(&model.Offer{}).
			Where("task_id = ? AND status = ?", taskID, constants.OfferPending).
			Update("status", constants.OfferRejected).Error
	})
}

// SubmitWork moves an assigned task to work_submitted.
func (r *TaskRepository) SubmitWork(ctx context.Context, taskID string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ?", taskID, constants.TaskAssigned).
		Updates(map[string]interface{}{
			"status":            constants.TaskWorkSubmitted,
			"work_submitted_at": now,
			"version":           gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// ConfirmOffline sets one party's confirmation flag and, when both flags are
// true afterwards, closes the task. Flag set and closure run in a single
// transaction; both updates are conditional on work_submitted status, so a
// task cannot close twice and a single confirmation cannot close it.
func (r *TaskRepository) ConfirmOffline(ctx context.Context, taskID string, byRequester bool) error {
	flagColumn := "fulfiller_confirmed_offline"
	if byRequester {
		flagColumn = "requester_confirmed_offline"
	}
	now := time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("id = ? AND status = ?", taskID, constants.TaskWorkSubmitted).
			Updates(map[string]interface{}{
				flagColumn: true,
				"version":  gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		return tx.Model(&model.Task{}).
			Where("id = ? AND status = ? AND requester_confirmed_offline = ? AND fulfiller_confirmed_offline = ?",
				taskID, constants.TaskWorkSubmitted, true, true).
			Updates(map[string]interface{}{
				"status":    constants.TaskClosed,
				"closed_at": now,
				"version":   gorm.Expr("version + 1"),
			}).Error
	})
}

// DeleteCascade removes the task together with its offers, conversation and
// messages. Everything happens in one transaction so a failing step leaves
// no orphans behind.
func (r *TaskRepository) DeleteCascade(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conversationIDs []string
		if err := tx.Model(&model.Conversation{}).
			Where("task_id = ?", taskID).
			Pluck("id", &conversationIDs).Error; err != nil {
			return err
		}

		if len(conversationIDs) > 0 {
			if err := tx.Where("conversation_id IN ?", conversationIDs).
				Delete(&model.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", conversationIDs).
				Delete(&model.Conversation{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("task_id = ?", taskID).Delete(&model.Offer{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", taskID).Delete(&model.Task{}).Error
	})
}
