package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/dto"
	"github.com/inkwell-blog/inkwell-api/errs"
	"github.com/inkwell-blog/inkwell-api/models"
	"github.com/inkwell-blog/inkwell-api/services"
)

type postHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newPostHandler(blogPostRepo *database.BlogPostRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// decodePost reads, cleans and validates a post body
func (h postHandler) decodePost(w http.ResponseWriter, r *http.Request) (dto.PostInput, error) {
	var input dto.PostInput
	if err := dto.Decode(w, r, &input); err != nil {
		return input, err
	}
	input.Normalize()
	return input, input.Validate()
}

// createPost creates a new post owned by the caller
// @Summary Create post
// @Description Validates the post, assigns a slug derived from the title and stores it
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body dto.PostInput true "Post"
// @Success 201 {object} dto.PostResponse "Created post"
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Slug already taken"
// @Router /api/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := h.decodePost(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug, err := services.NewSlug(input.Title)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.GenericMessage, err))
			return
		}

		post := models.BlogPost{
			Slug:       slug,
			Title:      input.Title,
			Excerpt:    input.Excerpt,
			Content:    input.Content,
			CoverImage: dto.NilIfEmpty(input.CoverImage),
			Published:  *input.Published,
			Tags:       datatypes.JSONSlice[string](input.Tags),
			AuthorID:   caller.UserID,
		}

		// A slug collision is surfaced, not retried
		if err := h.blogPostRepo.Add(r.Context(), &post); err != nil {
			if errs.IsUniqueViolation(err) {
				h.responder.WriteError(w, errs.NewConflictError("A post with this slug already exists"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "post", err))
			return
		}

		h.logger.Info().Str("postId", post.ID.String()).Str("slug", post.Slug).Msg("Post created")
		h.responder.WriteJSON(w, http.StatusCreated, dto.NewPostResponse(post))
	}
}

// listPosts returns one page of the caller's posts, newest first
// @Summary List own posts
// @Tags Posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.Page[dto.PostResponse]
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page := dto.ParsePagination(r.URL.Query())

		var (
			posts []models.BlogPost
			total int64
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			posts, err = h.blogPostRepo.ListByAuthor(ctx, caller.UserID, page.Offset(), page.Limit)
			return err
		})
		g.Go(func() error {
			var err error
			total, err = h.blogPostRepo.CountByAuthor(ctx, caller.UserID)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "posts", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewPage(dto.NewPostResponses(posts), page, total))
	}
}

// getPost returns one of the caller's posts
// @Summary Get own post
// @Tags Posts
// @Produce json
// @Param postId path string true "Post ID" format(uuid)
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/posts/{postId} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.findOwned(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewPostResponse(*post))
	}
}

// updatePost replaces the editable fields of one of the caller's posts
// @Summary Update own post
// @Description The slug assigned on creation is kept
// @Tags Posts
// @Accept json
// @Produce json
// @Param postId path string true "Post ID" format(uuid)
// @Param post body dto.PostInput true "Post"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/posts/{postId} [patch]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := postIDParam(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := h.decodePost(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.findOwned(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post.Title = input.Title
		post.Excerpt = input.Excerpt
		post.Content = input.Content
		post.CoverImage = dto.NilIfEmpty(input.CoverImage)
		post.Published = *input.Published
		post.Tags = datatypes.JSONSlice[string](input.Tags)

		updated, err := h.blogPostRepo.UpdateOwned(r.Context(), post)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post", err))
			return
		}
		if updated == 0 {
			h.responder.WriteError(w, errPostNotFound)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewPostResponse(*post))
	}
}

// togglePublish flips the published flag, or sets it when publishStatus is sent
// @Summary Publish or unpublish own post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postId path string true "Post ID" format(uuid)
// @Param body body dto.PublishInput false "Explicit status"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/posts/{postId}/publish [patch]
func (h postHandler) togglePublish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		postID, err := postIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input dto.PublishInput
		if err := dto.DecodeOptional(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.findOwned(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		published := !post.Published
		if input.PublishStatus != nil {
			published = *input.PublishStatus
		}

		updated, err := h.blogPostRepo.SetPublished(r.Context(), postID, caller.UserID, published)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("publish", "post", err))
			return
		}
		if updated == 0 {
			h.responder.WriteError(w, errPostNotFound)
			return
		}

		post, err = h.findOwned(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("postId", postID.String()).Bool("published", published).Msg("Publish status changed")
		h.responder.WriteJSON(w, http.StatusOK, dto.NewPostResponse(*post))
	}
}

// deletePost hard-deletes one of the caller's posts with its comments
// @Summary Delete own post
// @Tags Posts
// @Param postId path string true "Post ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/posts/{postId} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.findOwned(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.blogPostRepo.DeleteOwned(r.Context(), post.ID, post.AuthorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "post", err))
			return
		}
		if deleted == 0 {
			h.responder.WriteError(w, errPostNotFound)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// findOwned is the ownership gate of every single-post endpoint: a post that
// is missing and a post owned by someone else look the same.
func (h postHandler) findOwned(r *http.Request) (*models.BlogPost, error) {
	caller, err := callerFrom(r)
	if err != nil {
		return nil, err
	}
	postID, err := postIDParam(r)
	if err != nil {
		return nil, err
	}

	post, err := h.blogPostRepo.FindOwned(r.Context(), postID, caller.UserID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errPostNotFound
		}
		return nil, wrapDatabaseError("find", "post", err)
	}
	return post, nil
}
