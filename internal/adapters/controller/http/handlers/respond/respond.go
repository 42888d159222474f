package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/pkg/logger/types"
	"gorm.io/gorm"
)

// Error writes err as {"error": "..."} with a status matching its kind.
// Unexpected errors are logged and reported to the client as fallback.
func Error(c *gin.Context, logger *types.Logger, err error, fallback string) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("(user: %s) %s %s: %v", c.GetString(UserIDKey), c.Request.Method, c.FullPath(), err)
		message = fallback
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

func classify(err error) (int, string) {
	var hasRegistrations *errorz.EventHasRegistrationsError
	var invalid *errorz.ValidationError

	switch {
	case errors.Is(err, errorz.ErrNotAuthenticated), errors.Is(err, errorz.ErrInvalidSession):
		return http.StatusUnauthorized, errorz.ErrNotAuthenticated.Error()
	case errors.Is(err, errorz.ErrForbidden), errors.Is(err, errorz.ErrEmailNotVerified):
		return http.StatusForbidden, err.Error()
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Error()
	case errors.Is(err, errorz.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &hasRegistrations),
		errors.Is(err, errorz.ErrActiveEventExists),
		errors.Is(err, errorz.ErrConcurrentEventUpdate),
		errors.Is(err, errorz.ErrAlreadyRegistered),
		errors.Is(err, errorz.ErrSubmissionConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errorz.ErrNoActiveEvent), errors.Is(err, errorz.ErrNotRegistered):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, ""
	}
}
