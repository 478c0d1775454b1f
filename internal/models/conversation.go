package model

import "time"

type Conversation struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string    `gorm:"size:36;not null;uniqueIndex" json:"taskId"`
	RequesterID string    `gorm:"size:36;not null" json:"requesterId"`
	FulfillerID string    `gorm:"size:36;not null" json:"fulfillerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Message struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string    `gorm:"size:36;not null;index" json:"conversationId"`
	SenderID       string    `gorm:"size:36;not null;index" json:"senderId"`
	Body           string    `gorm:"size:2000;not null" json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
