package inmemory

import (
	"context"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

type userRepo struct {
	s *Store
}

func (r userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, errs.NewNotFound("user")
	}
	return &user, nil
}

func (r userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, errs.NewNotFound("user")
}

// usernameTaken must be called with a lock held.
func (r userRepo) usernameTaken(username string, except uint) bool {
	for id, user := range r.s.users {
		if id != except && user.Username == username {
			return true
		}
	}
	return false
}

func (r userRepo) Add(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.usernameTaken(user.Username, 0) {
		return errs.NewAlreadyExists("user")
	}
	user.ID = r.s.nextID("users")
	user.DateJoined = stamp(user.DateJoined)
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return errs.NewNotFound("user")
	}
	if r.usernameTaken(user.Username, user.ID) {
		return errs.NewAlreadyExists("user")
	}
	stored.Username = user.Username
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	r.s.users[user.ID] = stored
	return nil
}

func (r userRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return errs.NewNotFound("user")
	}
	for postID, post := range r.s.posts {
		if post.AuthorID == id {
			r.s.deletePostLocked(postID)
		}
	}
	for commentID, comment := range r.s.comments {
		if comment.AuthorID == id {
			delete(r.s.comments, commentID)
		}
	}
	delete(r.s.users, id)
	return nil
}
