// Package inmemory is a Data Store kept in process memory. It behaves like
// the GORM repositories, including the delete rules between tables, and is
// used for local runs (DB_TYPE=memory) and tests.
package inmemory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

// Store holds every table behind one lock so multi-table deletes are atomic.
type Store struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	categories map[uint]models.Category
	locations  map[uint]models.Location
	posts      map[uint]models.Post
	comments   map[uint]models.Comment
	lastID     map[string]uint
}

// New creates an empty store and returns it as a Database.
func New() database.Database {
	return NewStore().Database()
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uint]models.User),
		categories: make(map[uint]models.Category),
		locations:  make(map[uint]models.Location),
		posts:      make(map[uint]models.Post),
		comments:   make(map[uint]models.Comment),
		lastID:     make(map[string]uint),
	}
}

func (s *Store) Database() database.Database {
	return database.Compose(
		userRepo{s},
		categoryRepo{s},
		locationRepo{s},
		postRepo{s},
		commentRepo{s},
	)
}

// nextID must be called with the write lock held.
func (s *Store) nextID(table string) uint {
	s.lastID[table]++
	return s.lastID[table]
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func foreignKeyError(operation, entity, referenced string, id uint) error {
	return errs.NewDatabaseError(operation, entity,
		fmt.Errorf("violates foreign key constraint: %s %d does not exist", referenced, id))
}

// resolvePost fills the relations of a stored post. Read lock must be held.
func (s *Store) resolvePost(p models.Post) *models.Post {
	out := p
	if author, ok := s.users[p.AuthorID]; ok {
		out.Author = &author
	}
	out.Category = nil
	if p.CategoryID != nil {
		if category, ok := s.categories[*p.CategoryID]; ok {
			out.Category = &category
		}
	}
	out.Location = nil
	if p.LocationID != nil {
		if location, ok := s.locations[*p.LocationID]; ok {
			out.Location = &location
		}
	}
	var count int64
	for _, c := range s.comments {
		if c.PostID == p.ID {
			count++
		}
	}
	out.CommentCount = count
	return &out
}

func (s *Store) resolveComment(c models.Comment) *models.Comment {
	out := c
	if author, ok := s.users[c.AuthorID]; ok {
		out.Author = &author
	}
	return &out
}

// matches mirrors the WHERE clause of the GORM post listing. Read lock must be held.
func (s *Store) matches(p models.Post, filter database.PostFilter) bool {
	if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
		return false
	}
	if filter.PublicAt != nil {
		if !p.IsPublished || p.PubDate.After(*filter.PublicAt) {
			return false
		}
		if p.CategoryID != nil {
			if category, ok := s.categories[*p.CategoryID]; ok && !category.IsPublished {
				return false
			}
		}
	}
	return true
}

func sortPosts(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})
}

func sortComments(comments []*models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
}
