package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inkwell-blog/inkwell-api/auth"
	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/errs"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		systemHandler:    newSystemHandler(startupTime),
		postHandler:      newPostHandler(database.BlogPostRepo()),
		publicHandler:    newPublicHandler(database.BlogPostRepo(), database.CommentRepo()),
		commentHandler:   newCommentHandler(database.BlogPostRepo(), database.CommentRepo(), database.UserRepo()),
		dashboardHandler: newDashboardHandler(database.BlogPostRepo()),
		userHandler:      newUserHandler(database.UserRepo()),
	}
}

var errPostNotFound = errs.NewNotFoundError("Post not found!")

// postIDParam parses the {postId} path segment. A malformed id cannot name
// an existing post, so it is reported as not found.
func postIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		return uuid.Nil, errPostNotFound
	}
	return id, nil
}

// callerFrom returns the identity the auth middleware stored on the request
func callerFrom(r *http.Request) (auth.Identity, error) {
	identity, ok := identityFromCtx(r.Context())
	if !ok {
		return auth.Identity{}, errs.Unauthorized
	}
	return identity, nil
}
