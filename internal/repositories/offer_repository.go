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

// ErrDuplicateOffer signals a second offer from the same fulfiller on the
// same task, caught by the (task_id, fulfiller_id) unique index.
var ErrDuplicateOffer = errors.New("offer already exists for this task and fulfiller")

// OfferRepository is the offer ledger. It carries no business rules beyond
// referential scoping; state preconditions live in the lifecycle engine and
// in the conditional updates here.
type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, offer *model.Offer) error {
	offer.ID = uuid.NewString()
	offer.Status = constants.OfferPending

	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOffer
		}
		return err
	}
	return nil
}

func (r *OfferRepository) ListForTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

// FindByIDForTask fetches an offer scoped to its task, so a valid offer id
// paired with the wrong task id resolves to not-found.
func (r *OfferRepository) FindByIDForTask(ctx context.Context, offerID, taskID string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).
		First(&offer, "id = ? AND task_id = ?", offerID, taskID).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, offerID string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", offerID).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) HasOffer(ctx context.Context, taskID, fulfillerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ? AND fulfiller_id = ?", taskID, fulfillerID).
		Count(&count).Error
	return count > 0, err
}

// Withdraw moves a pending offer to withdrawn. A non-pending offer yields
// ErrStateConflict.
func (r *OfferRepository) Withdraw(ctx context.Context, offerID string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("id = ? AND status = ?", offerID, constants.OfferPending).
		Updates(map[string]interface{}{
			"status":       constants.OfferWithdrawn,
			"withdrawn_at": now,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// RejectPending bulk-rejects every pending offer on the task, skipping
// exceptOfferID when non-empty.
func (r *OfferRepository) RejectPending(ctx context.Context, taskID, exceptOfferID string) error {
	query := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ? AND status = ?", taskID, constants.OfferPending)
	if exceptOfferID != "" {
		query = query.Where("id <> ?", exceptOfferID)
	}
	return query.Update("status", constants.OfferRejected).Error
}
