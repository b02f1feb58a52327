package services

import (
	"context"
	"time"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rpupo63/blogicum-backend/pagination"
	"github.com/rs/zerolog"
)

// Feed is one page of posts for a listing context.
type Feed struct {
	Posts    []*models.Post   `json:"posts"`
	Page     pagination.Page  `json:"page"`
	Category *models.Category `json:"category,omitempty"`
	Profile  *models.User     `json:"profile,omitempty"`
}

type FeedService struct {
	logger     zerolog.Logger
	users      database.UserRepository
	categories database.CategoryRepository
	posts      database.PostRepository
	now        func() time.Time
}

func newFeedService(db database.Database, now func() time.Time) *FeedService {
	return &FeedService{
		logger:     serviceLogger("feeds"),
		users:      db.Users(),
		categories: db.Categories(),
		posts:      db.Posts(),
		now:        now,
	}
}

// Index is the home feed: public posts only, whoever asks.
func (s *FeedService) Index(ctx context.Context, pageParam string) (*Feed, error) {
	now := s.now()
	return s.page(ctx, database.PostFilter{PublicAt: &now}, pageParam)
}

// Category lists the public posts of a published category. Unknown and
// unpublished slugs are both not found.
func (s *FeedService) Category(ctx context.Context, slug, pageParam string) (*Feed, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !category.IsPublished {
		return nil, errs.NewNotFound("category")
	}

	now := s.now()
	feed, err := s.page(ctx, database.PostFilter{CategoryID: &category.ID, PublicAt: &now}, pageParam)
	if err != nil {
		return nil, err
	}
	feed.Category = category
	return feed, nil
}

// Profile lists a user's posts. Owners see everything they wrote, everyone
// else only the public part. An empty username means the viewer's own profile.
func (s *FeedService) Profile(ctx context.Context, viewer models.Viewer, username, pageParam string) (*Feed, error) {
	if username == "" {
		if !viewer.IsAuthenticated() {
			return nil, errs.NewAuthenticationRequiredError()
		}
		username = viewer.Username
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	filter := database.PostFilter{AuthorID: &user.ID}
	if !viewer.Is(user.ID) {
		now := s.now()
		filter.PublicAt = &now
	}

	feed, err := s.page(ctx, filter, pageParam)
	if err != nil {
		return nil, err
	}
	feed.Profile = user
	return feed, nil
}

func (s *FeedService) page(ctx context.Context, filter database.PostFilter, pageParam string) (*Feed, error) {
	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(total, pageParam, pagination.DefaultPerPage)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	posts, err := s.posts.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("total", total).
		Int("page", page.Number).
		Int("returned", len(posts)).
		Msg("feed page composed")

	return &Feed{Posts: posts, Page: page}, nil
}
