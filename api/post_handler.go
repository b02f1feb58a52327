package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *services.PostService
}

func newPostHandler(posts *services.PostService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}

// getPost godoc
// @Summary Post detail with its comments
// @Tags Posts
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} services.PostDetail
// @Failure 404 {object} ErrorResponse "Missing or hidden post"
// @Router /posts/{post_id} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		detail, err := h.posts.Get(r.Context(), ctxGetViewer(r.Context()), id)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, detail)
	}
}

// createForm lists the categories and locations a new post can use.
func (h postHandler) createForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if viewer := ctxGetViewer(r.Context()); !viewer.IsAuthenticated() {
			h.responder.WriteError(w, r, errAuthenticationRequired())
			return
		}

		choices, err := h.posts.FormChoices(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, choices)
	}
}

// createPost godoc
// @Summary Create a post as the current user
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body services.PostInput true "Post"
// @Success 201 {object} models.Post
// @Failure 302 "Anonymous user, redirected to login"
// @Failure 400 {object} ErrorResponse
// @Router /posts/create [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		if !viewer.IsAuthenticated() {
			h.responder.WriteError(w, r, errAuthenticationRequired())
			return
		}

		var input services.PostInput
		if err := decodeJSON(r, &input, "post"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		post, err := h.posts.Create(r.Context(), viewer, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WriteCreated(w, postPath(post.ID), map[string]any{
			"post":     post,
			"redirect": profilePath(viewer.Username),
		})
	}
}

func (h postHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		form, err := h.posts.GetForEdit(r.Context(), ctxGetViewer(r.Context()), id)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, form)
	}
}

// updatePost godoc
// @Summary Edit a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param post_id path int true "Post ID"
// @Param post body services.PostInput true "Post"
// @Success 200 {object} models.Post
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse
// @Router /posts/{post_id}/edit [post]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		viewer := ctxGetViewer(r.Context())
		// Visibility and ownership are settled before the body is read.
		if _, err := h.posts.Editable(r.Context(), viewer, id); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		var input services.PostInput
		if err := decodeJSON(r, &input, "post"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		post, err := h.posts.Update(r.Context(), viewer, id, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, postPath(post.ID), map[string]any{"post": post})
	}
}

func (h postHandler) deleteConfirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		post, err := h.posts.ConfirmDelete(r.Context(), ctxGetViewer(r.Context()), id)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"post": post})
	}
}

// deletePost godoc
// @Summary Delete a post and its comments
// @Tags Posts
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} map[string]string "redirect to the author's profile"
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse
// @Router /posts/{post_id}/delete [post]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		viewer := ctxGetViewer(r.Context())

		if err := h.posts.Delete(r.Context(), viewer, id); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, profilePath(viewer.Username), nil)
	}
}
