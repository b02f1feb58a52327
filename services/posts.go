package services

import (
	"context"
	"strings"
	"time"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rs/zerolog"
)

// PostInput is the post form. Absent optional fields keep their defaults on
// create and their stored value on update.
type PostInput struct {
	Title       string  `json:"title"`
	Text        string  `json:"text"`
	PubDate     string  `json:"pub_date"`
	LocationID  *uint   `json:"location"`
	CategoryID  *uint   `json:"category"`
	Image       *string `json:"image"`
	IsPublished *bool   `json:"is_published"`
}

// PostDetail is a single post with the comments the viewer may read.
type PostDetail struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

// FormChoices are the options offered by the post form.
type FormChoices struct {
	Categories []*models.Category `json:"categories"`
	Locations  []*models.Location `json:"locations"`
}

// PostForm is an existing post prepared for editing.
type PostForm struct {
	Post *models.Post `json:"post"`
	FormChoices
}

type PostService struct {
	logger     zerolog.Logger
	posts      database.PostRepository
	comments   database.CommentRepository
	categories database.CategoryRepository
	locations  database.LocationRepository
	now        func() time.Time
}

func newPostService(db database.Database, now func() time.Time) *PostService {
	return &PostService{
		logger:     serviceLogger("posts"),
		posts:      db.Posts(),
		comments:   db.Comments(),
		categories: db.Categories(),
		locations:  db.Locations(),
		now:        now,
	}
}

// Get returns a post the viewer may see. Hidden posts are reported as not
// found so their existence does not leak.
func (s *PostService) Get(ctx context.Context, viewer models.Viewer, id uint) (*PostDetail, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(viewer, post, s.now()) {
		return nil, errs.NewNotFound("post")
	}

	comments, err := s.comments.FindByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	visible := make([]*models.Comment, 0, len(comments))
	for _, comment := range comments {
		if CanViewComment(viewer, comment) {
			visible = append(visible, comment)
		}
	}

	return &PostDetail{Post: post, Comments: visible}, nil
}

func (s *PostService) FormChoices(ctx context.Context) (FormChoices, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return FormChoices{}, err
	}
	locations, err := s.locations.FindAll(ctx)
	if err != nil {
		return FormChoices{}, err
	}
	return FormChoices{Categories: categories, Locations: locations}, nil
}

func (s *PostService) Create(ctx context.Context, viewer models.Viewer, input PostInput) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, errs.NewAuthenticationRequiredError()
	}

	post := &models.Post{
		AuthorID:    viewer.UserID,
		PubDate:     s.now().UTC(),
		IsPublished: true,
	}
	if err := s.apply(ctx, post, input); err != nil {
		return nil, err
	}

	if err := s.posts.Add(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("postID", post.ID).Uint("authorID", post.AuthorID).Msg("post created")

	return s.posts.FindByID(ctx, post.ID)
}

func (s *PostService) GetForEdit(ctx context.Context, viewer models.Viewer, id uint) (*PostForm, error) {
	post, err := s.loadOwned(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	choices, err := s.FormChoices(ctx)
	if err != nil {
		return nil, err
	}
	return &PostForm{Post: post, FormChoices: choices}, nil
}

func (s *PostService) Update(ctx context.Context, viewer models.Viewer, id uint, input PostInput) (*models.Post, error) {
	post, err := s.loadOwned(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, post, input); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("postID", post.ID).Msg("post updated")

	return s.posts.FindByID(ctx, post.ID)
}

// Editable returns the post when viewer may change it.
func (s *PostService) Editable(ctx context.Context, viewer models.Viewer, id uint) (*models.Post, error) {
	return s.loadOwned(ctx, viewer, id)
}

// ConfirmDelete returns the post a delete confirmation would show.
func (s *PostService) ConfirmDelete(ctx context.Context, viewer models.Viewer, id uint) (*models.Post, error) {
	return s.loadOwned(ctx, viewer, id)
}

func (s *PostService) Delete(ctx context.Context, viewer models.Viewer, id uint) error {
	post, err := s.loadOwned(ctx, viewer, id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}
	s.logger.Info().Uint("postID", post.ID).Msg("post deleted")
	return nil
}

// loadOwned runs the mutation guards in order: anonymous viewers must log in,
// posts they cannot see do not exist, and only the author may go further.
func (s *PostService) loadOwned(ctx context.Context, viewer models.Viewer, id uint) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, errs.NewAuthenticationRequiredError()
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(viewer, post, s.now()) {
		return nil, errs.NewNotFound("post")
	}
	if !CanMutate(viewer, post.AuthorID) {
		return nil, errs.NewForbiddenError("only the author can change this post")
	}
	return post, nil
}

// apply validates input onto post. Nothing is written when it fails.
func (s *PostService) apply(ctx context.Context, post *models.Post, input PostInput) error {
	fields := errs.FieldErrors{}

	title := requireText(fields, "title", input.Title, maxTitleLength)
	text := requireText(fields, "text", input.Text, 0)

	pubDate := post.PubDate
	if raw := strings.TrimSpace(input.PubDate); raw != "" {
		parsed, err := parsePubDate(raw)
		if err != nil {
			fields.Add("pub_date", "Enter a valid date/time.")
		} else {
			pubDate = parsed
		}
	}

	if input.CategoryID != nil {
		if err := s.checkReference(ctx, fields, "category", s.categoryExists(*input.CategoryID)); err != nil {
			return err
		}
	}
	if input.LocationID != nil {
		if err := s.checkReference(ctx, fields, "location", s.locationExists(*input.LocationID)); err != nil {
			return err
		}
	}

	var image *string
	if input.Image != nil {
		if trimmed := strings.TrimSpace(*input.Image); trimmed != "" {
			checkLength(fields, "image", trimmed, maxImageLength)
			image = &trimmed
		}
	}

	if err := fields.Err(); err != nil {
		return err
	}

	post.Title = title
	post.Text = text
	post.PubDate = pubDate
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	post.Image = image
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	// Relations are reloaded after the write.
	post.Category, post.Location, post.Author = nil, nil, nil
	return nil
}

func (s *PostService) categoryExists(id uint) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.categories.FindByID(ctx, id)
		return err
	}
}

func (s *PostService) locationExists(id uint) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.locations.FindByID(ctx, id)
		return err
	}
}

// checkReference turns a missing row into a field error and passes any other
// failure through.
func (s *PostService) checkReference(ctx context.Context, fields errs.FieldErrors, field string, lookup func(context.Context) error) error {
	err := lookup(ctx)
	switch {
	case err == nil:
		return nil
	case errs.IsNotFound(err):
		fields.Add(field, "Select a valid choice. That choice is not one of the available choices.")
		return nil
	default:
		return err
	}
}
