package models

import "time"

type Comment struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	AuthorID    uint      `json:"author_id" db:"author_id" gorm:"not null;index"`
	Author      *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID      uint      `json:"post_id" db:"post_id" gorm:"not null;index"`
	IsPublished bool      `json:"is_published" db:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`
}
