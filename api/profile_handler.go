package api

import (
	"net/http"

	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	profiles  *services.ProfileService
}

func newProfileHandler(profiles *services.ProfileService) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profiles:  profiles,
	}
}

func (h profileHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.profiles.Current(r.Context(), ctxGetViewer(r.Context()))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"user": user})
	}
}

// updateProfile godoc
// @Summary Edit the current user's profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body services.ProfileInput true "Profile"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /edit_profile [post]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		if !viewer.IsAuthenticated() {
			h.responder.WriteError(w, r, errAuthenticationRequired())
			return
		}

		var input services.ProfileInput
		if err := decodeJSON(r, &input, "profile"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		user, err := h.profiles.UpdateProfile(r.Context(), viewer, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, profilePath(user.Username), map[string]any{"user": user})
	}
}
