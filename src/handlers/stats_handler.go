package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scopetrack/scopetrack-go/src/response"
	"github.com/scopetrack/scopetrack-go/src/services"
)

type StatsHandler struct {
	service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) GetRequestStats(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	stats, err := h.service.RequestStats(projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: stats})
}

func (h *StatsHandler) GetProposalStats(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	stats, err := h.service.ProposalStats(projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: stats})
}

func (h *StatsHandler) GetDashboard(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: dash})
}
