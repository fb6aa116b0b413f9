package models

import "time"

type Price struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type  string  `gorm:"size:20;uniqueIndex;not null" json:"type"`
	Price float64 `gorm:"not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
