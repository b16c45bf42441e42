package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scopetrack/scopetrack-go/src/response"
	"github.com/scopetrack/scopetrack-go/src/services"
	"gorm.io/gorm"
)

// writeServiceError maps the service error taxonomy onto HTTP. Notices are
// handled by callers since they carry the unchanged entity.
func writeServiceError(c *gin.Context, err error) {
	var transition *services.TransitionError
	if errors.As(err, &transition) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: transition.Message})
		return
	}

	var partial *services.PartialCompletionError
	if errors.As(err, &partial) {
		c.JSON(http.StatusInternalServerError, response.PartialErrorResponse{
			Code:  "partial_completion",
			Error: partial.Error(),
			Data:  gin.H{"proposal_id": partial.ProposalID},
		})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "not found"})
		return
	}

	c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
}
