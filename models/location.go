package models

import "time"

type Location struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(256);not null"`
	IsPublished bool      `json:"is_published" db:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`
}
