package services

import (
	"context"
	"time"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rs/zerolog"
)

type CommentInput struct {
	Text        string `json:"text"`
	IsPublished *bool  `json:"is_published"`
}

type CommentService struct {
	logger   zerolog.Logger
	posts    database.PostRepository
	comments database.CommentRepository
	now      func() time.Time
}

func newCommentService(db database.Database, now func() time.Time) *CommentService {
	return &CommentService{
		logger:   serviceLogger("comments"),
		posts:    db.Posts(),
		comments: db.Comments(),
		now:      now,
	}
}

// Create comments on a post the viewer can see as the viewer.
func (s *CommentService) Create(ctx context.Context, viewer models.Viewer, postID uint, input CommentInput) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, errs.NewAuthenticationRequiredError()
	}
	post, err := s.visiblePost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID:    viewer.UserID,
		PostID:      post.ID,
		IsPublished: true,
		CreatedAt:   s.now().UTC(),
	}
	if err := applyComment(comment, input); err != nil {
		return nil, err
	}

	if err := s.comments.Add(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("commentID", comment.ID).Uint("postID", post.ID).Msg("comment created")

	return s.comments.FindByID(ctx, comment.ID)
}

func (s *CommentService) GetForEdit(ctx context.Context, viewer models.Viewer, postID, commentID uint) (*models.Comment, error) {
	return s.loadOwned(ctx, viewer, postID, commentID)
}

func (s *CommentService) Update(ctx context.Context, viewer models.Viewer, postID, commentID uint, input CommentInput) (*models.Comment, error) {
	comment, err := s.loadOwned(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := applyComment(comment, input); err != nil {
		return nil, err
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("commentID", comment.ID).Msg("comment updated")

	return s.comments.FindByID(ctx, comment.ID)
}

func (s *CommentService) Delete(ctx context.Context, viewer models.Viewer, postID, commentID uint) error {
	comment, err := s.loadOwned(ctx, viewer, postID, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}
	s.logger.Info().Uint("commentID", comment.ID).Msg("comment deleted")
	return nil
}

func (s *CommentService) visiblePost(ctx context.Context, viewer models.Viewer, postID uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanView(viewer, post, s.now()) {
		return nil, errs.NewNotFound("post")
	}
	return post, nil
}

// loadOwned finds the comment under the given post. A comment that belongs to
// another post, or that the viewer cannot read, is not found.
func (s *CommentService) loadOwned(ctx context.Context, viewer models.Viewer, postID, commentID uint) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, errs.NewAuthenticationRequiredError()
	}
	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID || !CanViewComment(viewer, comment) {
		return nil, errs.NewNotFound("comment")
	}
	if !CanMutate(viewer, comment.AuthorID) {
		return nil, errs.NewForbiddenError("only the author can change this comment")
	}
	return comment, nil
}

func applyComment(comment *models.Comment, input CommentInput) error {
	fields := errs.FieldErrors{}
	text := requireText(fields, "text", input.Text, 0)
	if err := fields.Err(); err != nil {
		return err
	}

	comment.Text = text
	if input.IsPublished != nil {
		comment.IsPublished = *input.IsPublished
	}
	comment.Author = nil
	return nil
}
