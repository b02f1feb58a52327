package database

import (
	"context"
	"time"

	"github.com/rpupo63/blogicum-backend/models"
)

// PostFilter narrows a post listing. A nil PublicAt lists every post of the
// selection, hidden and scheduled ones included.
type PostFilter struct {
	AuthorID   *uint
	CategoryID *uint
	// PublicAt keeps only posts that are published, not scheduled after
	// PublicAt, and not filed under an unpublished category.
	PublicAt *time.Time
	Limit    int
	Offset   int
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user together with their posts and comments.
	Delete(ctx context.Context, id uint) error
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Add(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	// Delete removes the category; its posts stay with no category.
	Delete(ctx context.Context, id uint) error
}

type LocationRepository interface {
	FindAll(ctx context.Context) ([]*models.Location, error)
	FindByID(ctx context.Context, id uint) (*models.Location, error)
	Add(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) error
	// Delete removes the location; its posts stay with no location.
	Delete(ctx context.Context, id uint) error
}

type PostRepository interface {
	// Find lists posts newest pub_date first with author, category, location
	// and comment count resolved.
	Find(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Add(ctx context.Context, post *models.Post) error
	// Update writes the editable columns. The author is never changed.
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its comments.
	Delete(ctx context.Context, id uint) error
}

type CommentRepository interface {
	// FindByPost lists a post's comments newest first with authors resolved.
	FindByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	Add(ctx context.Context, comment *models.Comment) error
	// Update writes the comment text and flag. Author and post are never changed.
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}
