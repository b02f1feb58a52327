package database

import (
	"context"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postColumns = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// editablePostColumns are the columns an author may change after creation.
var editablePostColumns = []string{"title", "text", "image", "pub_date", "location_id", "category_id", "is_published"}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

func (r *PostRepo) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		q = q.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.PublicAt != nil {
		q = q.Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", *filter.PublicAt).
			Where("(posts.category_id IS NULL OR categories.is_published = ?)", true)
	}
	return q
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Select(postColumns).
		Preload("Author").
		Preload("Category").
		Preload("Location")
}

// Find returns one page of posts matching the filter
func (r *PostRepo) Find(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	q := withRelations(r.filtered(ctx, filter)).
		Order("posts.pub_date DESC").
		Order("posts.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, translate("find", "posts", err)
	}
	return posts, nil
}

func (r *PostRepo) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, translate("count", "posts", err)
}

// FindByID returns a post with its relations resolved
func (r *PostRepo) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := withRelations(r.db.WithContext(ctx).Model(&models.Post{})).
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, translate("find", "post", err)
	}
	return &post, nil
}

// Add inserts a new post; referenced rows are never upserted
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return translate("create", "post", r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(post).
		Select(editablePostColumns).
		Updates(post)
	if res.Error != nil {
		return translate("update", "post", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("post")
	}
	return nil
}

// Delete removes a post and its comments in one transaction
func (r *PostRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("post")
		}
		return nil
	})
	return translate("delete", "post", err)
}
