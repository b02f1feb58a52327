package inmemory

import (
	"context"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

type commentRepo struct {
	s *Store
}

func (r commentRepo) FindByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, r.s.resolveComment(c))
		}
	}
	sortComments(out)
	return out, nil
}

func (r commentRepo) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, errs.NewNotFound("comment")
	}
	return r.s.resolveComment(c), nil
}

func (r commentRepo) Add(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return foreignKeyError("create", "comment", "user", comment.AuthorID)
	}
	if _, ok := r.s.posts[comment.PostID]; !ok {
		return foreignKeyError("create", "comment", "post", comment.PostID)
	}
	comment.ID = r.s.nextID("comments")
	comment.CreatedAt = stamp(comment.CreatedAt)
	stored := *comment
	stored.Author = nil
	r.s.comments[comment.ID] = stored
	return nil
}

func (r commentRepo) Update(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.comments[comment.ID]
	if !ok {
		return errs.NewNotFound("comment")
	}
	stored.Text = comment.Text
	stored.IsPublished = comment.IsPublished
	r.s.comments[comment.ID] = stored
	return nil
}

func (r commentRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return errs.NewNotFound("comment")
	}
	delete(r.s.comments, id)
	return nil
}
