package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	comments  *services.CommentService
}

func newCommentHandler(comments *services.CommentService) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		comments:  comments,
	}
}

// commentIDs reads the post and comment ids of a nested comment route.
func commentIDs(r *http.Request) (postID, commentID uint, err error) {
	if postID, err = idParam(r, "post_id"); err != nil {
		return 0, 0, err
	}
	if commentID, err = idParam(r, "comment_id"); err != nil {
		return 0, 0, err
	}
	return postID, commentID, nil
}

// addComment godoc
// @Summary Comment on a post
// @Tags Comments
// @Accept json
// @Produce json
// @Param post_id path int true "Post ID"
// @Param comment body services.CommentInput true "Comment"
// @Success 201 {object} models.Comment
// @Failure 302 "Anonymous user, redirected to login"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{post_id}/comment [post]
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		if !viewer.IsAuthenticated() {
			h.responder.WriteError(w, r, errAuthenticationRequired())
			return
		}
		postID, err := idParam(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		var input services.CommentInput
		if err := decodeJSON(r, &input, "comment"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		comment, err := h.comments.Create(r.Context(), viewer, postID, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		location := fmt.Sprintf("%s#comment_%d", postPath(postID), comment.ID)
		h.responder.WriteCreated(w, location, map[string]any{
			"comment":  comment,
			"redirect": postPath(postID),
		})
	}
}

// commentFormNotAllowed rejects GET on the comment endpoint; comments are
// only ever posted from the post page.
func (h commentHandler) commentFormNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", http.MethodPost)
		h.responder.WriteError(w, r, errs.NewMethodNotAllowedError(r.Method))
	}
}

func (h commentHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, commentID, err := commentIDs(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		comment, err := h.comments.GetForEdit(r.Context(), ctxGetViewer(r.Context()), postID, commentID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"comment": comment})
	}
}

// updateComment godoc
// @Summary Edit a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param post_id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Param comment body services.CommentInput true "Comment"
// @Success 200 {object} models.Comment
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse "Missing, or not under this post"
// @Router /posts/{post_id}/edit_comment/{comment_id} [post]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		if !viewer.IsAuthenticated() {
			h.responder.WriteError(w, r, errAuthenticationRequired())
			return
		}
		postID, commentID, err := commentIDs(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		if _, err := h.comments.GetForEdit(r.Context(), viewer, postID, commentID); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		var input services.CommentInput
		if err := decodeJSON(r, &input, "comment"); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		comment, err := h.comments.Update(r.Context(), viewer, postID, commentID, input)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, postPath(postID), map[string]any{"comment": comment})
	}
}

func (h commentHandler) deleteConfirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, commentID, err := commentIDs(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		comment, err := h.comments.GetForEdit(r.Context(), ctxGetViewer(r.Context()), postID, commentID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"comment": comment})
	}
}

func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, commentID, err := commentIDs(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		if err := h.comments.Delete(r.Context(), ctxGetViewer(r.Context()), postID, commentID); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		h.responder.WriteRedirectHint(w, postPath(postID), nil)
	}
}
