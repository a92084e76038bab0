package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"voting-service/internal/models"
	"voting-service/internal/services"
	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP error contract.
func respondError(c *gin.Context, err error) {
	var limitErr *services.DailyLimitError
	if errors.As(err, &limitErr) {
		c.AbortWithStatusJSON(http.StatusForbidden, models.DailyLimitResponse{
			Message:      response.Message(response.ErrCodeDailyLimitExceeded),
			Error:        response.ErrCodeDailyLimitExceeded,
			NextVoteDate: limitErr.NextVoteAt,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrCandidateNotFound):
		response.Abort(c, http.StatusNotFound, response.ErrCodeCandidateNotFound, "")
	case errors.Is(err, services.ErrInvalidQuantity):
		response.Abort(c, http.StatusUnprocessableEntity, response.ErrCodeInvalidQuantity, "")
	case errors.Is(err, services.ErrInvalidImage):
		response.Abort(c, http.StatusUnprocessableEntity, response.ErrCodeInvalidImage, err.Error())
	case errors.Is(err, services.ErrCandidateExists):
		response.Abort(c, http.StatusConflict, response.ErrCodeConflict, "Candidate name already exists")
	case errors.Is(err, services.ErrUserAlreadyExists):
		response.Abort(c, http.StatusConflict, response.ErrCodeConflict, "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrUserNotFound):
		response.Abort(c, http.StatusNotFound, response.ErrCodeNotFound, "User not found")
	default:
		slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		response.Abort(c, http.StatusInternalServerError, response.ErrCodeInternal, "")
	}
}

func badRequest(c *gin.Context, err error) {
	response.Abort(c, http.StatusBadRequest, response.ErrCodeInvalidRequest, err.Error())
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Abort(c, http.StatusBadRequest, response.ErrCodeInvalidRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
