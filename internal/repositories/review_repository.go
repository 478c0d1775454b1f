package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "taskmarket.com/taskmarket/internal/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	review.ID = uuid.NewString()
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":  review.Rating,
			"comment": review.Comment,
		}).Error
}

func (r *ReviewRepository) FindByTaskAndReviewer(ctx context.Context, taskID, reviewerID string) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		First(&review, "task_id = ? AND reviewer_id = ?", taskID, reviewerID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListForReviewee(ctx context.Context, revieweeID string, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at desc").Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// AggregateForReviewee returns the average rating and review count for a
// user, (0, 0) when they have none.
func (r *ReviewRepository) AggregateForReviewee(ctx context.Context, revieweeID string) (float64, int, error) {
	type aggregate struct {
		Average float64
		Count   int64
	}

	var agg aggregate
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("reviewee_id = ?", revieweeID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.Average, int(agg.Count), nil
}
