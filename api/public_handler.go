package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/dto"
	"github.com/inkwell-blog/inkwell-api/errs"
	"github.com/inkwell-blog/inkwell-api/models"
	"github.com/inkwell-blog/inkwell-api/services"
)

// publicHandler serves readers. Nothing here needs a session and drafts are
// never returned.
type publicHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	commentRepo  *database.CommentRepo
}

func newPublicHandler(blogPostRepo *database.BlogPostRepo, commentRepo *database.CommentRepo) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		commentRepo:  commentRepo,
	}
}

// listPublishedPosts returns one page of published posts from every author
// @Summary List published posts
// @Tags Public
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.Page[dto.PublicPostSummary]
// @Router /api/public/posts [get]
func (h publicHandler) listPublishedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := dto.ParsePagination(r.URL.Query())

		var (
			posts []models.BlogPost
			total int64
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			posts, err = h.blogPostRepo.ListPublished(ctx, page.Offset(), page.Limit)
			return err
		})
		g.Go(func() error {
			var err error
			total, err = h.blogPostRepo.CountPublished(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "published posts", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewPage(dto.NewPublicPostSummaries(posts), page, total))
	}
}

// getPublishedPost returns a published post by slug with its author's profile
// @Summary Get published post
// @Tags Public
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.PublicPostResponse
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/public/posts/{slug} [get]
func (h publicHandler) getPublishedPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !services.IsValidSlug(slug) {
			h.responder.WriteError(w, errPostNotFound)
			return
		}

		post, err := h.blogPostRepo.FindPublishedBySlug(r.Context(), slug)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errPostNotFound)
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "published post", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewPublicPostResponse(*post))
	}
}

// listComments returns every comment on a post, oldest first. The post's
// published state is not checked.
// @Summary List comments of a post
// @Tags Public
// @Produce json
// @Param postId path string true "Post ID" format(uuid)
// @Success 200 {array} dto.CommentResponse
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/public/posts/{postId}/comments [get]
func (h publicHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := postIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.commentRepo.ListByPost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "comments", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewCommentResponses(comments))
	}
}
