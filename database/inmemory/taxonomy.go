package inmemory

import (
	"context"
	"sort"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

type categoryRepo struct {
	s *Store
}

func (r categoryRepo) FindAll(ctx context.Context) ([]*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Category, 0, len(r.s.categories))
	for _, category := range r.s.categories {
		c := category
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r categoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	category, ok := r.s.categories[id]
	if !ok {
		return nil, errs.NewNotFound("category")
	}
	return &category, nil
}

func (r categoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, category := range r.s.categories {
		if category.Slug == slug {
			return &category, nil
		}
	}
	return nil, errs.NewNotFound("category")
}

func (r categoryRepo) slugTaken(slug string, except uint) bool {
	for id, category := range r.s.categories {
		if id != except && category.Slug == slug {
			return true
		}
	}
	return false
}

func (r categoryRepo) Add(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slugTaken(category.Slug, 0) {
		return errs.NewAlreadyExists("category")
	}
	category.ID = r.s.nextID("categories")
	category.CreatedAt = stamp(category.CreatedAt)
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepo) Update(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.categories[category.ID]
	if !ok {
		return errs.NewNotFound("category")
	}
	if r.slugTaken(category.Slug, category.ID) {
		return errs.NewAlreadyExists("category")
	}
	stored.Title = category.Title
	stored.Description = category.Description
	stored.Slug = category.Slug
	stored.IsPublished = category.IsPublished
	r.s.categories[category.ID] = stored
	return nil
}

func (r categoryRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return errs.NewNotFound("category")
	}
	for postID, post := range r.s.posts {
		if post.CategoryID != nil && *post.CategoryID == id {
			post.CategoryID = nil
			r.s.posts[postID] = post
		}
	}
	delete(r.s.categories, id)
	return nil
}

type locationRepo struct {
	s *Store
}

func (r locationRepo) FindAll(ctx context.Context) ([]*models.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Location, 0, len(r.s.locations))
	for _, location := range r.s.locations {
		l := location
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r locationRepo) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	location, ok := r.s.locations[id]
	if !ok {
		return nil, errs.NewNotFound("location")
	}
	return &location, nil
}

func (r locationRepo) Add(ctx context.Context, location *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	location.ID = r.s.nextID("locations")
	location.CreatedAt = stamp(location.CreatedAt)
	r.s.locations[location.ID] = *location
	return nil
}

func (r locationRepo) Update(ctx context.Context, location *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.locations[location.ID]
	if !ok {
		return errs.NewNotFound("location")
	}
	stored.Name = location.Name
	stored.IsPublished = location.IsPublished
	r.s.locations[location.ID] = stored
	return nil
}

func (r locationRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[id]; !ok {
		return errs.NewNotFound("location")
	}
	for postID, post := range r.s.posts {
		if post.LocationID != nil && *post.LocationID == id {
			post.LocationID = nil
			r.s.posts[postID] = post
		}
	}
	delete(r.s.locations, id)
	return nil
}
