package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rs/zerolog"
)

// loginPath is where anonymous users are sent when a page needs an account.
const loginPath = "/auth/login"

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteStatusJSON(w, http.StatusOK, data)
}

func (r Responder) WriteStatusJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteCreated answers a successful create with the new resource's URL.
func (r Responder) WriteCreated(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	r.WriteStatusJSON(w, http.StatusCreated, data)
}

// WriteRedirectHint tells the client where the page flow continues after a
// successful form submission.
func (r Responder) WriteRedirectHint(w http.ResponseWriter, target string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["redirect"] = target
	r.WriteJSON(w, data)
}

func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	// Anonymous users are sent to log in instead of being shown an error.
	if errs.IsAuthenticationRequired(err) {
		target := loginPath + "?next=" + url.QueryEscape(req.URL.RequestURI())
		http.Redirect(w, req, target, http.StatusFound)
		return
	}

	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Str("path", req.URL.Path).Msg("unexpected error")
		r.WriteStatusJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("path", req.URL.Path).Msg(apiErr.GetFullError())
		r.WriteStatusJSON(w, apiErr.StatusCode, ErrorResponse{
			Error:   http.StatusText(apiErr.StatusCode),
			Status:  "error",
			Details: apiErr.Details,
		})
		return
	}

	r.WriteStatusJSON(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Fields:  apiErr.Fields,
		Details: apiErr.Details,
	})
}
