package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/dto"
)

type dashboardHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newDashboardHandler(blogPostRepo *database.BlogPostRepo) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// getStats counts the caller's posts by publication state
// @Summary Dashboard stats
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/dashboard/stats [get]
func (h dashboardHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		counts, err := h.blogPostRepo.CountByPublished(r.Context(), caller.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, dto.StatsResponse{
			TotalPosts:     counts.Total(),
			PublishedPosts: counts.Published,
			DraftPosts:     counts.Drafts,
			// TODO: report real numbers once post views are recorded
			TotalViews: 0,
		})
	}
}
