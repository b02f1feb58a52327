package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blogicum-backend/auth"
	"github.com/rpupo63/blogicum-backend/config"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/services"
)

const maxBodyBytes = 1 << 20

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc services.Services, provider *auth.Provider, cfg config.Config, pinger pinger, r *router) *routeHandlers {
	return &routeHandlers{
		feedHandler:    newFeedHandler(svc.Feeds),
		postHandler:    newPostHandler(svc.Posts),
		commentHandler: newCommentHandler(svc.Comments),
		profileHandler: newProfileHandler(svc.Profiles),
		authHandler:    newAuthHandler(provider, cfg.SessionCookie),
		adminHandler:   newAdminHandler(svc.Taxonomy),
		healthHandler:  newHealthHandler(pinger, r.startupTime),
	}
}

// idParam reads a positive numeric path parameter. Anything else cannot name
// a row, so it is not found rather than a bad request.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewNotFoundError(name + " " + strconv.Quote(raw))
	}
	return uint(id), nil
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any, payloadType string) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	return nil
}

func errAuthenticationRequired() error {
	return errs.NewAuthenticationRequiredError()
}
