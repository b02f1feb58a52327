package models

import "time"

// Category groups posts under a URL slug. Unpublished categories hide their posts.
type Category struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(256);not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(64);not null;uniqueIndex"`
	IsPublished bool      `json:"is_published" db:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`
}
