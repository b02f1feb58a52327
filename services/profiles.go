package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rs/zerolog"
)

// usernamePattern accepts letters, digits and @ . + - _
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

type ProfileInput struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type ProfileService struct {
	logger   zerolog.Logger
	users    database.UserRepository
	reserved map[string]struct{}
}

func newProfileService(db database.Database, reserved []string) *ProfileService {
	names := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		names[name] = struct{}{}
	}
	return &ProfileService{
		logger:   serviceLogger("profiles"),
		users:    db.Users(),
		reserved: names,
	}
}

// Current returns the viewer's own account.
func (s *ProfileService) Current(ctx context.Context, viewer models.Viewer) (*models.User, error) {
	if !viewer.IsAuthenticated() {
		return nil, errs.NewAuthenticationRequiredError()
	}
	return s.users.FindByID(ctx, viewer.UserID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, viewer models.Viewer, input ProfileInput) (*models.User, error) {
	user, err := s.Current(ctx, viewer)
	if err != nil {
		return nil, err
	}

	fields := errs.FieldErrors{}
	username := ValidateUsername(fields, input.Username)
	firstName := strings.TrimSpace(input.FirstName)
	checkLength(fields, "first_name", firstName, maxNameLength)
	lastName := strings.TrimSpace(input.LastName)
	checkLength(fields, "last_name", lastName, maxNameLength)
	email := ValidateEmail(fields, input.Email)
	if username != "" && username != user.Username {
		s.checkRename(fields, user.Username, username)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if username != user.Username {
		existing, err := s.users.FindByUsername(ctx, username)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, errs.NewConflictError("a user with that username already exists")
		case err != nil && !errs.IsNotFound(err):
			return nil, err
		}
	}

	user.Username = username
	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("userID", user.ID).Msg("profile updated")

	return user, nil
}

// checkRename keeps admin account names fixed so a name can never carry
// staff rights to another account.
func (s *ProfileService) checkRename(fields errs.FieldErrors, from, to string) {
	if _, ok := s.reserved[from]; ok {
		fields.Add("username", "This username is reserved and can't be changed.")
		return
	}
	if _, ok := s.reserved[to]; ok {
		fields.Add("username", "This username is reserved.")
	}
}

// ValidateUsername trims and checks a username, recording problems in fields.
func ValidateUsername(fields errs.FieldErrors, username string) string {
	username = requireText(fields, "username", username, maxUsernameLength)
	if username != "" && !usernamePattern.MatchString(username) {
		fields.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	return username
}

// ValidateEmail accepts an empty address.
func ValidateEmail(fields errs.FieldErrors, email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return email
	}
	checkLength(fields, "email", email, maxEmailLength)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		fields.Add("email", "Enter a valid email address.")
	}
	return email
}
