package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/response"
	"github.com/scopetrack/scopetrack-go/src/services"
)

type ScopeItemHandler struct {
	service *services.ScopeItemService
}

func NewScopeItemHandler(service *services.ScopeItemService) *ScopeItemHandler {
	return &ScopeItemHandler{service: service}
}

func (h *ScopeItemHandler) CreateScopeItem(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input dto.CreateScopeItemDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.service.Create(projectID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: item})
}

func (h *ScopeItemHandler) ListScopeItems(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.ListByProject(projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: items})
}

func (h *ScopeItemHandler) UpdateScopeItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateScopeItemDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.service.Update(itemID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: item})
}

func (h *ScopeItemHandler) DeleteScopeItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(itemID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "scope item deleted"})
}
