package services

import (
	"time"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Services bundles the use cases the HTTP layer calls into.
type Services struct {
	Feeds    *FeedService
	Posts    *PostService
	Comments *CommentService
	Profiles *ProfileService
	Taxonomy *TaxonomyService
}

type options struct {
	now      func() time.Time
	reserved []string
}

type Option func(*options)

// WithClock replaces time.Now, which decides what counts as already published.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithReservedUsernames lists the admin account names. Profile edits can
// neither rename into nor away from them.
func WithReservedUsernames(names []string) Option {
	return func(o *options) {
		o.reserved = append(o.reserved, names...)
	}
}

func New(db database.Database, opts ...Option) Services {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return Services{
		Feeds:    newFeedService(db, o.now),
		Posts:    newPostService(db, o.now),
		Comments: newCommentService(db, o.now),
		Profiles: newProfileService(db, o.reserved),
		Taxonomy: newTaxonomyService(db),
	}
}

func serviceLogger(name string) zerolog.Logger {
	return log.With().Str("service", name).Logger()
}
