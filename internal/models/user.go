package model

import (
	"time"

	"taskmarket.com/taskmarket/internal/constants"
)

type User struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	FullName      string         `gorm:"size:120;not null" json:"fullName"`
	Email         string         `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash  string         `gorm:"not null" json:"-"`
	Role          constants.Role `gorm:"type:varchar(10);not null;default:user" json:"role"`
	AverageRating float64        `gorm:"not null;default:0" json:"averageRating"`
	RatingCount   int            `gorm:"not null;default:0" json:"ratingCount"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// PublicUser is the profile shape exposed to other users: no email, no hash.
type PublicUser struct {
	ID            string         `json:"id"`
	FullName      string         `json:"fullName"`
	Role          constants.Role `json:"role"`
	AverageRating float64        `json:"averageRating"`
	RatingCount   int            `json:"ratingCount"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		FullName:      u.FullName,
		Role:          u.Role,
		AverageRating: u.AverageRating,
		RatingCount:   u.RatingCount,
		CreatedAt:     u.CreatedAt,
	}
}
