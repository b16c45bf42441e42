package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/response"
	"github.com/scopetrack/scopetrack-go/src/services"
)

type ProposalHandler struct {
	service *services.ProposalService
}

func NewProposalHandler(service *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input dto.CreateProposalDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	proposal, err := h.service.Create(projectID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: proposal})
}

func (h *ProposalHandler) ListProposals(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	proposals, err := h.service.List(projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: proposals})
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	proposal, err := h.service.Get(projectID, proposalID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: proposal})
}

func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	var input dto.UpdateProposalDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	proposal, warning, err := h.service.Update(projectID, proposalID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if warning != "" {
		c.JSON(http.StatusOK, response.WarningResponse{Warning: warning, Data: proposal})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: proposal})
}

func (h *ProposalHandler) SendProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	proposal, err := h.service.Send(projectID, proposalID)
	writeCommandResult(c, proposal, err)
}

func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	proposal, err := h.service.Accept(projectID, proposalID)
	writeCommandResult(c, proposal, err)
}

func (h *ProposalHandler) DeclineProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	proposal, err := h.service.Decline(projectID, proposalID)
	writeCommandResult(c, proposal, err)
}

func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	if err := h.service.Delete(projectID, proposalID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "proposal deleted"})
}

func (h *ProposalHandler) DuplicateProposal(c *gin.Context) {
	projectID, proposalID, ok := parsePair(c)
	if !ok {
		return
	}

	proposal, err := h.service.Duplicate(projectID, proposalID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: proposal})
}
