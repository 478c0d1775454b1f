package model

import (
	"time"

	"taskmarket.com/taskmarket/internal/constants"
)

type Task struct {
	ID                        string               `gorm:"primaryKey;size:36" json:"id"`
	RequesterID               string               `gorm:"size:36;not null;index" json:"requesterId"`
	AssignedFulfillerID       *string              `gorm:"size:36;index" json:"assignedFulfillerId"`
	AcceptedOfferID           *string              `gorm:"size:36" json:"acceptedOfferId"`
	Title                     string               `gorm:"size:140;not null" json:"title"`
	Description               string               `gorm:"size:2500;not null" json:"description"`
	BudgetAmount              float64              `gorm:"not null" json:"budgetAmount"`
	Currency                  string               `gorm:"size:3;not null;default:INR" json:"currency"`
	Status                    constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	RequesterConfirmedOffline bool                 `gorm:"not null;default:false" json:"requesterConfirmedOffline"`
	FulfillerConfirmedOffline bool                 `gorm:"not null;default:false" json:"fulfillerConfirmedOffline"`
	WorkSubmittedAt           *time.Time           `json:"workSubmittedAt"`
	ClosedAt                  *time.Time           `json:"closedAt"`
	CancelledAt               *time.Time           `json:"cancelledAt"`
	RequiresModification      bool                 `gorm:"not null;default:false;index" json:"requiresModification"`
	ModificationNote          string               `gorm:"size:500;not null;default:''" json:"modificationNote"`
	ModificationRequestedAt   *time.Time           `json:"modificationRequestedAt"`
	Version                   uint                 `gorm:"not null;default:1" json:"-"`
	CreatedAt                 time.Time            `json:"createdAt"`
	UpdatedAt                 time.Time            `json:"updatedAt"`
}

// IsParticipant reports whether userID is the requester or the assigned
// fulfiller of the task.
func (t *Task) IsParticipant(userID string) bool {
	if t.RequesterID == userID {
		return true
	}
	return t.AssignedFulfillerID != nil && *t.AssignedFulfillerID == userID
}
