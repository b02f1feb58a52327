package api

import (
	"context"

	"github.com/rpupo63/blogicum-backend/models"
)

type keyType string

const viewerKey keyType = "viewer"

// ctxWithViewer stores the identity a request acts as.
func ctxWithViewer(ctx context.Context, viewer models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// ctxGetViewer returns the request's viewer, anonymous when none was stored.
func ctxGetViewer(ctx context.Context) models.Viewer {
	if viewer, ok := ctx.Value(viewerKey).(models.Viewer); ok {
		return viewer
	}
	return models.Anonymous
}
