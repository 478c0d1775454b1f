package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

const reviewListLimit = 100

// ReviewService accepts reviews for closed tasks from their participants and
// keeps the reviewee's aggregate rating current. It reads task state but
// never mutates it.
type ReviewService struct {
	reviews *repository.ReviewRepository
	users   *repository.UserRepository
	tasks   *TaskService
}

func NewReviewService(reviews *repository.ReviewRepository, users *repository.UserRepository, tasks *TaskService) *ReviewService {
	return &ReviewService{reviews: reviews, users: users, tasks: tasks}
}

// Submit creates the caller's review for a closed task, or updates it if one
// exists already. Returns the review and whether it was newly created.
func (s *ReviewService) Submit(ctx context.Context, taskID, callerID string, rating int, comment string) (*model.Review, bool, error) {
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 {
		return nil, false, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "rating", Message: "rating must be between 1 and 5",
		})
	}
	if len(comment) > 1000 {
		return nil, false, apperrors.Validation("Invalid input", apperrors.Detail{
			Field: "comment", Message: "comment must be at most 1000 characters",
		})
	}

	snapshot, err := s.tasks.Snapshot(ctx, taskID)
	if err != nil {
		return nil, false, err
	}

	if snapshot.Status != constants.TaskClosed {
		return nil, false, apperrors.InvalidTaskState("Reviews are allowed only after task closure")
	}
	if snapshot.AssignedFulfillerID == nil {
		return nil, false, apperrors.InvalidTaskState("Task has no assigned fulfiller")
	}

	requesterID := snapshot.RequesterID
	fulfillerID := *snapshot.AssignedFulfillerID

	if callerID != requesterID && callerID != fulfillerID {
		return nil, false, apperrors.Forbidden("Only task participants can submit a review")
	}

	revieweeID := requesterID
	if callerID == requesterID {
		revieweeID = fulfillerID
	}

	var review *model.Review
	created := false

	existing, err := s.reviews.FindByTaskAndReviewer(ctx, taskID, callerID)
	switch {
	case err == nil:
		existing.Rating = rating
		existing.Comment = comment
		if err := s.reviews.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		review = existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = &model.Review{
			TaskID:     taskID,
			ReviewerID: callerID,
			RevieweeID: revieweeID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			return nil, false, err
		}
		created = true
	default:
		return nil, false, err
	}

	if err := s.refreshAggregate(ctx, review.RevieweeID); err != nil {
		return nil, false, err
	}
	return review, created, nil
}

func (s *ReviewService) ListForUser(ctx context.Context, userID string) ([]model.Review, error) {
	return s.reviews.ListForReviewee(ctx, userID, reviewListLimit)
}

func (s *ReviewService) refreshAggregate(ctx context.Context, revieweeID string) error {
	average, count, err := s.reviews.AggregateForReviewee(ctx, revieweeID)
	if err != nil {
		return err
	}

	rounded := math.Round(average*100) / 100
	return s.users.UpdateRating(ctx, revieweeID, rounded, count)
}
