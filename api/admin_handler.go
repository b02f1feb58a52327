package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// adminHandler exposes category and location provisioning to staff.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	taxonomy  *services.TaxonomyService
}

func newAdminHandler(taxonomy *services.TaxonomyService) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		taxonomy:  taxonomy,
	}
}

func (h adminHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.taxonomy.ListCategories(r.Context(), ctxGetViewer(r.Context()))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"categories": categories})
	}
}

func (h adminHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		category, err := h.taxonomy.GetCategory(r.Context(), ctxGetViewer(r.Context()), id)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

func (h adminHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.CategoryInput
		if err := decodeJSON(r, &input, "category"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		category, err := h.taxonomy.CreateCategory(r.Context(), ctxGetViewer(r.Context()), input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteCreated(w, fmt.Sprintf("/admin/categories/%d", category.ID), category)
	}
}

func (h adminHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		var input services.CategoryInput
		if err := decodeJSON(r, &input, "category"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		category, err := h.taxonomy.UpdateCategory(r.Context(), ctxGetViewer(r.Context()), id, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

func (h adminHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		if err := h.taxonomy.DeleteCategory(r.Context(), ctxGetViewer(r.Context()), id); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, "/admin/categories", nil)
	}
}

func (h adminHandler) listLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := h.taxonomy.ListLocations(r.Context(), ctxGetViewer(r.Context()))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"locations": locations})
	}
}

func (h adminHandler) getLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		location, err := h.taxonomy.GetLocation(r.Context(), ctxGetViewer(r.Context()), id)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, location)
	}
}

func (h adminHandler) createLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.LocationInput
		if err := decodeJSON(r, &input, "location"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		location, err := h.taxonomy.CreateLocation(r.Context(), ctxGetViewer(r.Context()), input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteCreated(w, fmt.Sprintf("/admin/locations/%d", location.ID), location)
	}
}

func (h adminHandler) updateLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		var input services.LocationInput
		if err := decodeJSON(r, &input, "location"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		location, err := h.taxonomy.UpdateLocation(r.Context(), ctxGetViewer(r.Context()), id, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, location)
	}
}

func (h adminHandler) deleteLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		if err := h.taxonomy.DeleteLocation(r.Context(), ctxGetViewer(r.Context()), id); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, "/admin/locations", nil)
	}
}
