package model

import (
	"time"

	"taskmarket.com/taskmarket/internal/constants"
)

type Report struct {
	ID             string                     `gorm:"primaryKey;size:36" json:"id"`
	ReporterID     string                     `gorm:"size:36;not null;index" json:"reporterId"`
	TargetType     constants.ReportTargetType `gorm:"type:varchar(10);not null;index" json:"targetType"`
	TargetID       string                     `gorm:"size:36;not null;index" json:"targetId"`
	Reason         string                     `gorm:"size:500;not null" json:"reason"`
	Status         constants.ReportStatus     `gorm:"type:varchar(15);not null;default:open;index" json:"status"`
	ResolutionNote string                     `gorm:"size:500;not null;default:''" json:"resolutionNote"`
	ResolvedBy     *string                    `gorm:"size:36" json:"resolvedBy"`
	ResolvedAt     *time.Time                 `json:"resolvedAt"`
	CreatedAt      time.Time                  `json:"createdAt"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
}
