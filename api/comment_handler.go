package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/dto"
	"github.com/inkwell-blog/inkwell-api/errs"
	"github.com/inkwell-blog/inkwell-api/models"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	commentRepo  *database.CommentRepo
	userRepo     *database.UserRepo
}

func newCommentHandler(blogPostRepo *database.BlogPostRepo, commentRepo *database.CommentRepo, userRepo *database.UserRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
	}
}

// createComment adds the caller's comment to a post
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param comment body dto.CommentInput true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 404 {object} ErrorResponse "Post not found!"
// @Router /api/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input dto.CommentInput
		if err := dto.Decode(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Validated as a uuid above
		postID := uuid.MustParse(input.PostID)

		exists, err := h.blogPostRepo.Exists(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errPostNotFound)
			return
		}

		author, err := h.userRepo.FindByID(r.Context(), caller.UserID)
		if err != nil {
			if errs.IsNotFound(err) {
				// The session names an account this store does not know
				h.responder.WriteError(w, errs.Unauthorized)
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		comment := models.Comment{
			Content:  input.Content,
			AuthorID: caller.UserID,
			PostID:   postID,
		}
		if err := h.commentRepo.Add(r.Context(), &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}
		comment.Author = author

		h.responder.WriteJSON(w, http.StatusCreated, dto.NewCommentResponse(comment))
	}
}
