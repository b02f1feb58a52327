package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type feedHandler struct {
	responder Responder
	logger    zerolog.Logger
	feeds     *services.FeedService
}

func newFeedHandler(feeds *services.FeedService) feedHandler {
	logger := log.With().Str("handlerName", "feedHandler").Logger()

	return feedHandler{
		responder: NewResponder(logger),
		logger:    logger,
		feeds:     feeds,
	}
}

// index godoc
// @Summary Home feed
// @Tags Feeds
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} services.Feed
// @Router / [get]
func (h feedHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := h.feeds.Index(r.Context(), r.URL.Query().Get("page"))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, feed)
	}
}

// category godoc
// @Summary Posts of a published category
// @Tags Feeds
// @Produce json
// @Param category_slug path string true "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} services.Feed
// @Failure 404 {object} ErrorResponse
// @Router /category/{category_slug} [get]
func (h feedHandler) category() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "category_slug")
		feed, err := h.feeds.Category(r.Context(), slug, r.URL.Query().Get("page"))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, feed)
	}
}

// profile godoc
// @Summary Posts of one user
// @Description The owner sees hidden and scheduled posts too.
// @Tags Feeds
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Success 200 {object} services.Feed
// @Failure 404 {object} ErrorResponse
// @Router /profile/{username} [get]
func (h feedHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		feed, err := h.feeds.Profile(r.Context(), viewer, chi.URLParam(r, "username"), r.URL.Query().Get("page"))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, feed)
	}
}

// ownProfile redirects to the viewer's profile page.
func (h feedHandler) ownProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		if !viewer.IsAuthenticated() {
			h.responder.WriteError(w, r, errs.NewAuthenticationRequiredError())
			return
		}
		http.Redirect(w, r, profilePath(viewer.Username), http.StatusFound)
	}
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username)
}
