package auth

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type Settings struct {
	Secret         string
	TTL            time.Duration
	AdminUsernames []string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Provider registers users, checks passwords and turns session tokens back
// into viewers.
type Provider struct {
	logger zerolog.Logger
	users  database.UserRepository
	secret []byte
	ttl    time.Duration
	staff  map[string]struct{}
	cost   int
	now    func() time.Time
}

type RegistrationInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewProvider(users database.UserRepository, settings Settings) *Provider {
	staff := make(map[string]struct{}, len(settings.AdminUsernames))
	for _, name := range settings.AdminUsernames {
		staff[name] = struct{}{}
	}
	cost := settings.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	ttl := settings.TTL
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}

	return &Provider{
		logger: log.With().Str("service", "auth").Logger(),
		users:  users,
		secret: []byte(settings.Secret),
		ttl:    ttl,
		staff:  staff,
		cost:   cost,
		now:    time.Now,
	}
}

func (p *Provider) Register(ctx context.Context, input RegistrationInput) (*models.User, error) {
	fields := errs.FieldErrors{}
	username := services.ValidateUsername(fields, input.Username)
	email := services.ValidateEmail(fields, input.Email)

	switch {
	case input.Password1 == "":
		fields.Add("password1", "This field is required.")
	case utf8.RuneCountInString(input.Password1) < minPasswordLength:
		fields.Add("password1", "This password is too short. It must contain at least 8 characters.")
	case isNumeric(input.Password1):
		fields.Add("password1", "This password is entirely numeric.")
	}
	if input.Password2 == "" {
		fields.Add("password2", "This field is required.")
	} else if input.Password1 != input.Password2 {
		fields.Add("password2", "The two password fields didn't match.")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password1), p.cost)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("could not hash password", err)
	}

	_, staff := p.staff[username]
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      staff,
		DateJoined:   p.now().UTC(),
	}
	if err := p.users.Add(ctx, user); err != nil {
		if errs.IsAlreadyExists(err) {
			return nil, errs.NewConflictError("a user with that username already exists")
		}
		return nil, err
	}
	p.logger.Info().Uint("userID", user.ID).Str("username", user.Username).Bool("staff", user.IsStaff).Msg("user registered")

	return user, nil
}

// Login checks a username and password. Unknown users and wrong passwords
// fail the same way.
func (p *Provider) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := p.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewInvalidCredentialsError()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		p.logger.Warn().Str("username", user.Username).Msg("failed login")
		return nil, errs.NewInvalidCredentialsError()
	}
	return user, nil
}

// IssueToken signs a session token for user and returns it with its expiry.
func (p *Provider) IssueToken(user *models.User) (string, time.Time, error) {
	issuedAt := p.now()
	expiresAt := issuedAt.Add(p.ttl)

	claims := sessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, errs.NewInternalErrorWithCause("could not sign session token", err)
	}
	return signed, expiresAt, nil
}

// Identify resolves a session token to the viewer it was issued for. The
// account is reloaded so renamed users keep their session.
func (p *Provider) Identify(ctx context.Context, token string) (models.Viewer, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if err != nil {
		return models.Anonymous, errs.NewUnauthorizedError(err.Error())
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return models.Anonymous, errs.NewUnauthorizedError("malformed subject")
	}

	user, err := p.users.FindByID(ctx, uint(id))
	if err != nil {
		if errs.IsNotFound(err) {
			return models.Anonymous, errs.NewUnauthorizedError("account no longer exists")
		}
		return models.Anonymous, err
	}

	return p.ViewerOf(user), nil
}

// ViewerOf builds the request identity from the stored account. Staff rights
// come from the account, not from its current name.
func (p *Provider) ViewerOf(user *models.User) models.Viewer {
	return models.Viewer{UserID: user.ID, Username: user.Username, Staff: user.IsStaff}
}

func (p *Provider) TTL() time.Duration {
	return p.ttl
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
