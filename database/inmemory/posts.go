package inmemory

import (
	"context"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

type postRepo struct {
	s *Store
}

func cloneID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// row strips what is not stored: relations and the derived comment count.
func row(p *models.Post) models.Post {
	out := *p
	out.Author, out.Category, out.Location = nil, nil, nil
	out.CommentCount = 0
	out.CategoryID = cloneID(p.CategoryID)
	out.LocationID = cloneID(p.LocationID)
	out.Image = cloneString(p.Image)
	return out
}

// checkReferences must be called with a lock held.
func (r postRepo) checkReferences(operation string, p *models.Post) error {
	if _, ok := r.s.users[p.AuthorID]; !ok {
		return foreignKeyError(operation, "post", "user", p.AuthorID)
	}
	if p.CategoryID != nil {
		if _, ok := r.s.categories[*p.CategoryID]; !ok {
			return foreignKeyError(operation, "post", "category", *p.CategoryID)
		}
	}
	if p.LocationID != nil {
		if _, ok := r.s.locations[*p.LocationID]; !ok {
			return foreignKeyError(operation, "post", "location", *p.LocationID)
		}
	}
	return nil
}

func (r postRepo) selectPosts(filter database.PostFilter) []*models.Post {
	out := make([]*models.Post, 0)
	for _, p := range r.s.posts {
		if r.s.matches(p, filter) {
			out = append(out, r.s.resolvePost(p))
		}
	}
	return out
}

func (r postRepo) Find(ctx context.Context, filter database.PostFilter) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := r.selectPosts(filter)
	sortPosts(posts)

	start := filter.Offset
	if start >= len(posts) {
		return []*models.Post{}, nil
	}
	end := len(posts)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return posts[start:end], nil
}

func (r postRepo) Count(ctx context.Context, filter database.PostFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total int64
	for _, p := range r.s.posts {
		if r.s.matches(p, filter) {
			total++
		}
	}
	return total, nil
}

func (r postRepo) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, errs.NewNotFound("post")
	}
	return r.s.resolvePost(p), nil
}

func (r postRepo) Add(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkReferences("create", post); err != nil {
		return err
	}
	post.ID = r.s.nextID("posts")
	post.CreatedAt = stamp(post.CreatedAt)
	r.s.posts[post.ID] = row(post)
	return nil
}

func (r postRepo) Update(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return errs.NewNotFound("post")
	}
	updated := row(post)
	updated.AuthorID = stored.AuthorID
	updated.CreatedAt = stored.CreatedAt
	if err := r.checkReferences("update", &updated); err != nil {
		return err
	}
	r.s.posts[post.ID] = updated
	return nil
}

func (r postRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return errs.NewNotFound("post")
	}
	r.s.deletePostLocked(id)
	return nil
}

// deletePostLocked removes a post and its comments. Write lock must be held.
func (s *Store) deletePostLocked(id uint) {
	for commentID, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, commentID)
		}
	}
	delete(s.posts, id)
}
