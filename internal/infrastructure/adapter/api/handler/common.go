package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its HTTP status and writes the
// standard error body. Unrecognized errors come back as a bare 500 so
// internals never leak to the caller.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domainerr.IsInsufficientBalanceError(err):
		status = http.StatusPaymentRequired
		message = err.Error()
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	case domainerr.IsConflictError(err):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domainerr.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case domainerr.IsAuthError(err):
		status = http.StatusUnauthorized
		message = err.Error()
	case domainerr.IsValidationError(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerr.ErrProviderUnavailable):
		status = http.StatusBadGateway
		message = err.Error()
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// respondBindError writes a 400 for a request that failed binding
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrValidation),
		Message: "Invalid request format: " + err.Error(),
	})
}

// pathID parses a numeric path parameter. The bool reports success; on
// failure the 400 response has already been written.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return id, true
}

// pageParams reads offset/limit query parameters, tolerating absence
func pageParams(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return offset, limit
}
