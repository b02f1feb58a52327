package services

import (
	"context"
	"regexp"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rs/zerolog"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type CategoryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished *bool  `json:"is_published"`
}

type LocationInput struct {
	Name        string `json:"name"`
	IsPublished *bool  `json:"is_published"`
}

// TaxonomyService provisions categories and locations. Every call is staff only.
type TaxonomyService struct {
	logger     zerolog.Logger
	categories database.CategoryRepository
	locations  database.LocationRepository
}

func newTaxonomyService(db database.Database) *TaxonomyService {
	return &TaxonomyService{
		logger:     serviceLogger("taxonomy"),
		categories: db.Categories(),
		locations:  db.Locations(),
	}
}

func requireStaff(viewer models.Viewer) error {
	if !viewer.IsAuthenticated() {
		return errs.NewAuthenticationRequiredError()
	}
	if !viewer.Staff {
		return errs.NewForbiddenError("staff access required")
	}
	return nil
}

func (s *TaxonomyService) ListCategories(ctx context.Context, viewer models.Viewer) ([]*models.Category, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	return s.categories.FindAll(ctx)
}

func (s *TaxonomyService) GetCategory(ctx context.Context, viewer models.Viewer, id uint) (*models.Category, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	return s.categories.FindByID(ctx, id)
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, viewer models.Viewer, input CategoryInput) (*models.Category, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	category := &models.Category{IsPublished: true}
	if err := applyCategory(category, input); err != nil {
		return nil, err
	}
	if err := s.categories.Add(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("categoryID", category.ID).Str("slug", category.Slug).Msg("category created")
	return category, nil
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, viewer models.Viewer, id uint, input CategoryInput) (*models.Category, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategory(category, input); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("categoryID", category.ID).Bool("published", category.IsPublished).Msg("category updated")
	return category, nil
}

// DeleteCategory keeps the category's posts; they lose their category.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, viewer models.Viewer, id uint) error {
	if err := requireStaff(viewer); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("categoryID", id).Msg("category deleted")
	return nil
}

func (s *TaxonomyService) ListLocations(ctx context.Context, viewer models.Viewer) ([]*models.Location, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	return s.locations.FindAll(ctx)
}

func (s *TaxonomyService) GetLocation(ctx context.Context, viewer models.Viewer, id uint) (*models.Location, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	return s.locations.FindByID(ctx, id)
}

func (s *TaxonomyService) CreateLocation(ctx context.Context, viewer models.Viewer, input LocationInput) (*models.Location, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	location := &models.Location{IsPublished: true}
	if err := applyLocation(location, input); err != nil {
		return nil, err
	}
	if err := s.locations.Add(ctx, location); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("locationID", location.ID).Msg("location created")
	return location, nil
}

func (s *TaxonomyService) UpdateLocation(ctx context.Context, viewer models.Viewer, id uint, input LocationInput) (*models.Location, error) {
	if err := requireStaff(viewer); err != nil {
		return nil, err
	}
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyLocation(location, input); err != nil {
		return nil, err
	}
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("locationID", location.ID).Msg("location updated")
	return location, nil
}

func (s *TaxonomyService) DeleteLocation(ctx context.Context, viewer models.Viewer, id uint) error {
	if err := requireStaff(viewer); err != nil {
		return err
	}
	if err := s.locations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("locationID", id).Msg("location deleted")
	return nil
}

func applyCategory(category *models.Category, input CategoryInput) error {
	fields := errs.FieldErrors{}
	title := requireText(fields, "title", input.Title, maxTitleLength)
	description := requireText(fields, "description", input.Description, 0)
	slug := requireText(fields, "slug", input.Slug, maxSlugLength)
	if slug != "" && !slugPattern.MatchString(slug) {
		fields.Add("slug", "Enter a valid slug consisting of Latin letters, numbers, underscores or hyphens.")
	}
	if err := fields.Err(); err != nil {
		return err
	}

	category.Title = title
	category.Description = description
	category.Slug = slug
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}
	return nil
}

func applyLocation(location *models.Location, input LocationInput) error {
	fields := errs.FieldErrors{}
	name := requireText(fields, "name", input.Name, maxTitleLength)
	if err := fields.Err(); err != nil {
		return err
	}

	location.Name = name
	if input.IsPublished != nil {
		location.IsPublished = *input.IsPublished
	}
	return nil
}
