package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/dto"
	"github.com/inkwell-blog/inkwell-api/errs"
)

const (
	msgUsernamePattern = "Username can contain only letters, numbers and _"
	msgUsernameTaken   = "Username already exists!"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// checkUsername tells the sign-up form whether a username is still free
// @Summary Check username availability
// @Tags Users
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} dto.UsernameCheckResponse "Available"
// @Failure 400 {object} ErrorResponse "Invalid username"
// @Failure 409 {object} dto.UsernameCheckResponse "Taken"
// @Router /api/check-username [get]
func (h userHandler) checkUsername() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("username")))
		if username == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Please provide a username"))
			return
		}
		if !dto.ValidUsername(username) {
			h.responder.WriteError(w, errs.NewBadRequestError(msgUsernamePattern))
			return
		}

		exists, err := h.userRepo.UsernameExists(r.Context(), username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "username", err))
			return
		}
		if exists {
			h.responder.WriteJSON(w, http.StatusConflict, dto.UsernameCheckResponse{Exists: true, Message: msgUsernameTaken})
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.UsernameCheckResponse{Exists: false})
	}
}

// updateProfile changes the caller's own profile
// @Summary Update own profile
// @Description Omitted optional fields are kept; an empty string clears them
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body dto.ProfileInput true "Profile"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 403 {object} ErrorResponse "Not the caller's profile"
// @Failure 409 {object} ErrorResponse "Username or email taken"
// @Router /api/me [patch]
func (h userHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input dto.ProfileInput
		if err := dto.Decode(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if input.ID != caller.UserID {
			h.responder.WriteError(w, errs.NewForbiddenError("You can only update your own profile"))
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), caller.UserID)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("User not found!"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if input.Username != user.Username {
			if !dto.ValidUsername(input.Username) {
				h.responder.WriteError(w, errs.NewFieldError(errs.FieldUsername, msgUsernamePattern))
				return
			}
			taken, err := h.userRepo.UsernameExists(r.Context(), input.Username)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check", "username", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewConflictError(msgUsernameTaken))
				return
			}
		}

		user.Name = input.Name
		user.Username = input.Username
		user.Email = input.Email
		applyOptional(&user.Image, input.Image)
		applyOptional(&user.CoverImage, input.CoverImage)
		applyOptional(&user.Website, input.Website)
		applyOptional(&user.Bio, input.Bio)

		if err := h.userRepo.UpdateProfile(r.Context(), user); err != nil {
			if errs.IsUniqueViolation(err) {
				h.responder.WriteError(w, errs.NewConflictError("Username or email already exists!"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.NewProfileResponse(*user))
	}
}

// applyOptional overwrites dst when the field was sent. A blank value clears it.
func applyOptional(dst **string, value *string) {
	if value == nil {
		return
	}
	*dst = dto.NilIfEmpty(value)
}
