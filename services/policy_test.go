package services

import (
	"testing"
	"time"

	"github.com/rpupo63/blogicum-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestIsPublic(t *testing.T) {
	published := &models.Category{IsPublished: true}
	unpublished := &models.Category{IsPublished: false}

	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{name: "published without category", post: models.Post{IsPublished: true, PubDate: now.Add(-time.Minute)}, want: true},
		{name: "published in published category", post: models.Post{IsPublished: true, PubDate: now, Category: published}, want: true},
		{name: "hidden", post: models.Post{IsPublished: false, PubDate: now.Add(-time.Minute)}, want: false},
		{name: "scheduled", post: models.Post{IsPublished: true, PubDate: now.Add(time.Second)}, want: false},
		{name: "unpublished category", post: models.Post{IsPublished: true, PubDate: now.Add(-time.Minute), Category: unpublished}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := tt.post
			assert.Equal(t, tt.want, IsPublic(&post, now))
		})
	}
}

func TestCanView_AuthorSeesHiddenWork(t *testing.T) {
	author := models.Viewer{UserID: 1, Username: "alice"}
	stranger := models.Viewer{UserID: 2, Username: "bob"}
	post := &models.Post{AuthorID: 1, IsPublished: false, PubDate: now.Add(time.Hour)}

	assert.True(t, CanView(author, post, now))
	assert.False(t, CanView(stranger, post, now))
	assert.False(t, CanView(models.Anonymous, post, now))
}

func TestCanMutate(t *testing.T) {
	assert.True(t, CanMutate(models.Viewer{UserID: 3}, 3))
	assert.False(t, CanMutate(models.Viewer{UserID: 4}, 3))
	assert.False(t, CanMutate(models.Anonymous, 0))
}

func TestCanViewComment(t *testing.T) {
	comment := &models.Comment{AuthorID: 1, IsPublished: false}

	assert.True(t, CanViewComment(models.Viewer{UserID: 1}, comment))
	assert.False(t, CanViewComment(models.Viewer{UserID: 2}, comment))

	comment.IsPublished = true
	assert.True(t, CanViewComment(models.Anonymous, comment))
}
