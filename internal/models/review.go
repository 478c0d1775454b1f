package model

import "time"

type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string    `gorm:"size:36;not null;uniqueIndex:idx_reviews_task_reviewer;index" json:"taskId"`
	ReviewerID string    `gorm:"size:36;not null;uniqueIndex:idx_reviews_task_reviewer;index" json:"reviewerId"`
	RevieweeID string    `gorm:"size:36;not null;index" json:"revieweeId"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"size:1000;not null;default:''" json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
