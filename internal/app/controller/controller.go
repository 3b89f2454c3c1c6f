package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	apperrors "github.com/marcp/critics-eye-backend/internal/errors"
	"github.com/marcp/critics-eye-backend/internal/middleware"
)

// parseID reads a numeric path parameter, writing 400 when it is not one.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// parseQueryID reads an optional numeric query parameter. A present but
// non-numeric value is a 422 on that field.
func parseQueryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperrors.FieldError(c, name, fmt.Sprintf("The %s must be an integer.", strings.ReplaceAll(name, "_", " ")))
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

// respondServiceError reports a data-rule failure as 422 and anything else
// through the persistence error parser.
func respondServiceError(c *gin.Context, err error, context string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		apperrors.RespondWithValidationError(c, verr.Fields)
		return
	}

	middleware.GetLoggerFromContext(c).Error("Failed to "+context, err)
	apperrors.ParseAndRespond(c, err, context)
}
