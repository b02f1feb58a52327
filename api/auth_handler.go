package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/blogicum-backend/auth"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder  Responder
	logger     zerolog.Logger
	provider   *auth.Provider
	cookieName string
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func newAuthHandler(provider *auth.Provider, cookieName string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		provider:   provider,
		cookieName: cookieName,
	}
}

// register godoc
// @Summary Create an account and log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body auth.RegistrationInput true "Registration"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /auth/registration [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input auth.RegistrationInput
		if err := decodeJSON(r, &input, "registration"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		user, err := h.provider.Register(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		session, err := h.startSession(w, r, user, "/profile")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteCreated(w, profilePath(user.Username), session)
	}
}

// login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param next query string false "Where to continue after logging in"
// @Param credentials body LoginInput true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if err := decodeJSON(r, &input, "login"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		user, err := h.provider.Login(r.Context(), input.Username, input.Password)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		session, err := h.startSession(w, r, user, safeNext(r.URL.Query().Get("next")))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, session)
	}
}

// loginPage tells a client redirected here what to submit.
func (h authHandler) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"fields": []string{"username", "password"},
			"next":   safeNext(r.URL.Query().Get("next")),
		})
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteRedirectHint(w, "/", nil)
	}
}

func (h authHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, next string) (SessionResponse, error) {
	token, expiresAt, err := h.provider.IssueToken(user)
	if err != nil {
		return SessionResponse{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info().Uint("userID", user.ID).Msg("session started")

	return SessionResponse{User: user, Token: token, ExpiresAt: expiresAt, Redirect: next}, nil
}

// safeNext only follows local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
