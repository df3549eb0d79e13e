// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/ai"
	"tripplanner/internal/modules/aiusage"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures IDs are alphanumeric and 32 chars (matches the session ID generator).
func isValidID(v string) bool {
	if len(v) != 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps module sentinel errors to status codes.
// A session owned by someone else reads as not found.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrInvalidRequest), errors.Is(err, trip.ErrNotActionable):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrForbidden):
		writeError(c, http.StatusNotFound, session.ErrNotFound.Error())
	case errors.Is(err, aiusage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// resultStatus is the status for a completed operation.
func resultStatus(res ai.Result) int {
	switch res.Reason {
	case "":
		return http.StatusOK
	case ai.NoCredential, ai.RemoteUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
