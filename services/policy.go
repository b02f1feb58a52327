package services

import (
	"time"

	"github.com/rpupo63/blogicum-backend/models"
)

// IsPublic reports whether anyone may read the post: it is published, its
// publication date has passed and its category, if any, is published.
func IsPublic(post *models.Post, now time.Time) bool {
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.Category != nil && !post.Category.IsPublished {
		return false
	}
	return true
}

// CanView lets authors read their own hidden and scheduled posts.
func CanView(viewer models.Viewer, post *models.Post, now time.Time) bool {
	return viewer.Is(post.AuthorID) || IsPublic(post, now)
}

// CanMutate holds only for the authenticated author.
func CanMutate(viewer models.Viewer, authorID uint) bool {
	return viewer.IsAuthenticated() && viewer.Is(authorID)
}

func CanViewComment(viewer models.Viewer, comment *models.Comment) bool {
	return comment.IsPublished || viewer.Is(comment.AuthorID)
}
