package models

import "time"

// Post is a publication. PubDate may lie in the future for scheduled posts.
// CommentCount is computed by feed queries and never written.
type Post struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(256);not null"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	Image       *string   `json:"image,omitempty" db:"image" gorm:"type:varchar(512)"`
	PubDate     time.Time `json:"pub_date" db:"pub_date" gorm:"type:timestamptz;not null;index"`
	AuthorID    uint      `json:"author_id" db:"author_id" gorm:"not null;index"`
	Author      *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	LocationID  *uint     `json:"location_id,omitempty" db:"location_id" gorm:"index"`
	Location    *Location `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	CategoryID  *uint     `json:"category_id,omitempty" db:"category_id" gorm:"index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	IsPublished bool      `json:"is_published" db:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`

	CommentCount int64 `json:"comment_count" gorm:"->;-:migration"`
}
