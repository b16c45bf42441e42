package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/models"
	"github.com/scopetrack/scopetrack-go/src/response"
	"github.com/scopetrack/scopetrack-go/src/services"
	"github.com/scopetrack/scopetrack-go/src/storage"
)

type RequestHandler struct {
	service     *services.RequestService
	attachments *storage.AttachmentStore
}

func NewRequestHandler(service *services.RequestService, attachments *storage.AttachmentStore) *RequestHandler {
	return &RequestHandler{service: service, attachments: attachments}
}

// writeCommandResult renders a state-machine command result: no-op guards
// come back as notices with the unchanged entity, everything else goes
// through the shared error mapping.
func writeCommandResult(c *gin.Context, entity interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, response.SuccessResponse{Data: entity})
		return
	}
	var notice *services.NoticeError
	if errors.As(err, &notice) {
		c.JSON(http.StatusOK, response.NoticeResponse{Notice: notice.Message, Data: entity})
		return
	}
	writeServiceError(c, err)
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input dto.CreateRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	req, err := h.service.Create(projectID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: req})
}

func (h *RequestHandler) ListRequests(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var filter dto.RequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	requests, err := h.service.List(projectID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: requests})
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	req, err := h.service.Get(projectID, requestID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	var input dto.UpdateRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	req, err := h.service.Update(projectID, requestID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	if err := h.service.Delete(projectID, requestID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "request deleted"})
}

func (h *RequestHandler) ClassifyRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	var input dto.ClassifyRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	req, err := h.service.Classify(projectID, requestID, models.ScopeClassification(input.Classification))
	writeCommandResult(c, req, err)
}

func (h *RequestHandler) AnalyzeRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	req, err := h.service.Analyze(projectID, requestID)
	writeCommandResult(c, req, err)
}

func (h *RequestHandler) MarkAddressed(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	req, err := h.service.MarkAddressed(projectID, requestID)
	writeCommandResult(c, req, err)
}

func (h *RequestHandler) DismissRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	req, err := h.service.Dismiss(projectID, requestID)
	writeCommandResult(c, req, err)
}

func (h *RequestHandler) RestoreRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	req, err := h.service.Restore(projectID, requestID)
	writeCommandResult(c, req, err)
}

func (h *RequestHandler) GetSuggestion(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	suggestion, err := h.service.Suggest(projectID, requestID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: suggestion})
}

func (h *RequestHandler) CreateProposalFromRequest(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}

	var input dto.ProposalFromRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	proposal, err := h.service.CreateProposalFrom(projectID, requestID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: proposal})
}

func (h *RequestHandler) UploadAttachment(c *gin.Context) {
	projectID, requestID, ok := parsePair(c)
	if !ok {
		return
	}
	if h.attachments == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "attachment storage not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	key, err := h.attachments.Upload(c.Request.Context(), projectID, requestID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	req, err := h.service.AttachFile(projectID, requestID, key)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

func parsePair(c *gin.Context) (projectID, entityID uuid.UUID, ok bool) {
	projectID, ok = parseID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	entityID, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, entityID, true
}
