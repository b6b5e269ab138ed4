package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/model"
	log "github.com/sirupsen/logrus"
)

// StatusClientClosedRequest reports a cancelled scan (nginx convention).
const StatusClientClosedRequest = 499

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrPrecondition):
		return http.StatusConflict
	case errors.Is(err, model.ErrCancelled):
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status; extra fields are merged into the body.
func respondError(c *gin.Context, err error, extra gin.H) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithField("path", c.FullPath()).Errorf("API: %v", err)
	}
	body := gin.H{"error": err.Error()}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, model.InputError("invalid request body: %v", err), nil)
		return false
	}
	return true
}
