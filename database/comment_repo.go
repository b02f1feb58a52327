package database

import (
	"context"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

func (r *CommentRepo) FindByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, translate("find", "comments", err)
	}
	return comments, nil
}

func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, translate("find", "comment", err)
	}
	return &comment, nil
}

func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	return translate("create", "comment", r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (r *CommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).Model(comment).
		Select("text", "is_published").
		Updates(comment)
	if res.Error != nil {
		return translate("update", "comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("comment")
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translate("delete", "comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("comment")
	}
	return nil
}
