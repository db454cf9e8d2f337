package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"budget-server/logging"
	"budget-server/usecases"

	"github.com/gin-gonic/gin"
)

// respondError writes {"error": msg} with the status matching the error kind.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecases.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecases.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		attrs := []any{"error", err}
		var ucErr *usecases.Error
		if errors.As(err, &ucErr) && ucErr.Err != nil {
			attrs = append(attrs, "cause", ucErr.Err)
		}
		logging.FromContext(c.Request.Context()).Error("request failed", attrs...)
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": msg,
	})
}

func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// parseID reads a positive integer path parameter. On failure it writes a
// 400 response and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, strconv.IntSize)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+name+": must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
