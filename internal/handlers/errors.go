package handlers

import (
	"errors"
	"net/http"

	"gridsense/internal/grid"
	"gridsense/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidBodyPref = "invalid body: "

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// isClientError reports errors caused by the request itself.
func isClientError(err error) bool {
	return errors.Is(err, grid.ErrOutOfRange) ||
		errors.Is(err, service.ErrInvalidTimeRange) ||
		errors.Is(err, service.ErrUnknownTier)
}

// respondServiceError answers 400 with the error text for client errors and
// a logged 500 with userMsg otherwise.
func (h *Handler) respondServiceError(c *gin.Context, err error, userMsg, logKey string, kv ...interface{}) {
	if isClientError(err) {
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
}
