package model

import (
	"time"

	"taskmarket.com/taskmarket/internal/constants"
)

type Offer struct {
	ID          string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string                `gorm:"size:36;not null;uniqueIndex:idx_offers_task_fulfiller;index" json:"taskId"`
	FulfillerID string                `gorm:"size:36;not null;uniqueIndex:idx_offers_task_fulfiller;index" json:"fulfillerId"`
	Amount      float64               `gorm:"not null" json:"amount"`
	Message     string                `gorm:"size:1200;not null" json:"message"`
	Status      constants.OfferStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	WithdrawnAt *time.Time            `json:"withdrawnAt"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
