package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/models"
	"github.com/scopetrack/scopetrack-go/src/repositories"
)

// ProposalService owns the proposal lifecycle: draft -> sent -> accepted or
// declined. Expiry of sent proposals is externally driven and never a
// command here.
type ProposalService struct {
	Repos *repositories.Repos
	Cache *cache.Store
	Hub   *events.Hub
}

func NewProposalService(repos *repositories.Repos, store *cache.Store, hub *events.Hub) *ProposalService {
	return &ProposalService{Repos: repos, Cache: store, Hub: hub}
}

// invalidate applies the declared key set for proposal mutations.
func (s *ProposalService) invalidate(projectID, proposalID uuid.UUID) {
	s.Cache.Invalidate(
		cache.ProposalList(projectID),
		cache.ProposalDetail(projectID, proposalID),
		cache.Dashboard(projectID),
	)
}

func (s *ProposalService) publish(t events.EventType, projectID, proposalID uuid.UUID) {
	if s.Hub != nil {
		s.Hub.Publish(events.Event{Type: t, ProjectID: projectID, EntityID: proposalID})
	}
}

func (s *ProposalService) Create(projectID uuid.UUID, input dto.CreateProposalDTO) (models.Proposal, error) {
	if _, err := s.Repos.Project.GetByID(projectID); err != nil {
		return models.Proposal{}, err
	}

	proposal := models.Proposal{
		ProjectID:      projectID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.ProposalStatusDraft,
		Amount:         input.Amount,
		EstimatedHours: input.EstimatedHours,
	}
	if err := s.Repos.Proposal.Create(&proposal); err != nil {
		return models.Proposal{}, err
	}
	s.invalidate(projectID, proposal.ID)
	s.publish(events.ProposalCreated, projectID, proposal.ID)
	return proposal, nil
}

func (s *ProposalService) Get(projectID, proposalID uuid.UUID) (models.Proposal, error) {
	key := cache.ProposalDetail(projectID, proposalID)
	var cached models.Proposal
	if s.Cache.Get(key, &cached) {
		return cached, nil
	}

	proposal, err := s.Repos.Proposal.GetByID(projectID, proposalID)
	if err != nil {
		return models.Proposal{}, err
	}
	s.Cache.Set(key, proposal)
	return proposal, nil
}

func (s *ProposalService) List(projectID uuid.UUID) ([]models.Proposal, error) {
	key := cache.ProposalList(projectID)
	var cached []models.Proposal
	if s.Cache.Get(key, &cached) {
		return cached, nil
	}

	proposals, err := s.Repos.Proposal.ListByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(key, proposals)
	return proposals, nil
}

// Update edits a proposal in any status. Editing an accepted proposal is
// discouraged but not blocked; the returned warning carries the notice.
func (s *ProposalService) Update(projectID, proposalID uuid.UUID, input dto.UpdateProposalDTO) (models.Proposal, string, error) {
	proposal, err := s.Repos.Proposal.GetByID(projectID, proposalID)
	if err != nil {
		return models.Proposal{}, "", err
	}

	warning := ""
	if proposal.Status == models.ProposalStatusAccepted {
		warning = "editing an accepted proposal; the client has already agreed to the original terms"
	}

	if input.Title != nil {
		proposal.Title = *input.Title
	}
	if input.Description != nil {
		proposal.Description = *input.Description
	}
	if input.Amount != nil {
		proposal.Amount = *input.Amount
	}
	if input.EstimatedHours != nil {
		proposal.EstimatedHours = input.EstimatedHours
	}
	if input.Status != nil {
		next := models.ProposalStatus(*input.Status)
		if (next == models.ProposalStatusAccepted || next == models.ProposalStatusDeclined) && proposal.RespondedAt == nil {
			now := time.Now().UTC()
			proposal.RespondedAt = &now
		}
		proposal.Status = next
	}

	if err := s.Repos.Proposal.Update(&proposal); err != nil {
		return models.Proposal{}, "", err
	}
	s.invalidate(projectID, proposalID)
	s.publish(events.ProposalUpdated, projectID, proposalID)
	return proposal, warning, nil
}

// Send transitions draft -> sent and stamps sent_at.
func (s *ProposalService) Send(projectID, proposalID uuid.UUID) (models.Proposal, error) {
	proposal, err := s.Repos.Proposal.GetByID(projectID, proposalID)
	if err != nil {
		return models.Proposal{}, err
	}
	if proposal.Status != models.ProposalStatusDraft {
		return proposal, &TransitionError{Message: fmt.Sprintf("only draft proposals can be sent; this one is %s", proposal.Status)}
	}

	now := time.Now().UTC()
	proposal.Status = models.ProposalStatusSent
	proposal.SentAt = &now
	if err := s.Repos.Proposal.Update(&proposal); err != nil {
		return models.Proposal{}, err
	}
	s.invalidate(projectID, proposalID)
	s.publish(events.ProposalUpdated, projectID, proposalID)
	return proposal, nil
}

// Accept transitions sent -> accepted and stamps responded_at.
func (s *ProposalService) Accept(projectID, proposalID uuid.UUID) (models.Proposal, error) {
	return s.respond(projectID, proposalID, models.ProposalStatusAccepted)
}

// Decline transitions sent -> declined and stamps responded_at.
func (s *ProposalService) Decline(projectID, proposalID uuid.UUID) (models.Proposal, error) {
	return s.respond(projectID, proposalID, models.ProposalStatusDeclined)
}

func (s *ProposalService) respond(projectID, proposalID uuid.UUID, target models.ProposalStatus) (models.Proposal, error) {
	proposal, err := s.Repos.Proposal.GetByID(projectID, proposalID)
	if err != nil {
		return models.Proposal{}, err
	}
	if proposal.Status != models.ProposalStatusSent {
		return proposal, &TransitionError{Message: fmt.Sprintf("only sent proposals can be %s; this one is %s", target, proposal.Status)}
	}

	now := time.Now().UTC()
	proposal.Status = target
	proposal.RespondedAt = &now
	if err := s.Repos.Proposal.Update(&proposal); err != nil {
		return models.Proposal{}, err
	}
	s.invalidate(projectID, proposalID)
	s.publish(events.ProposalUpdated, projectID, proposalID)
	return proposal, nil
}

// Delete removes a proposal; only drafts may be deleted.
func (s *ProposalService) Delete(projectID, proposalID uuid.UUID) error {
	proposal, err := s.Repos.Proposal.GetByID(projectID, proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != models.ProposalStatusDraft {
		return &TransitionError{Message: "cannot delete a proposal that has been sent"}
	}

	if err := s.Repos.Proposal.Delete(projectID, proposalID); err != nil {
		return err
	}
	s.invalidate(projectID, proposalID)
	s.publish(events.ProposalDeleted, projectID, proposalID)
	return nil
}

// Duplicate issues a fresh draft with the source proposal's content and a
// decorated title, regardless of the source's status.
func (s *ProposalService) Duplicate(projectID, proposalID uuid.UUID) (models.Proposal, error) {
	source, err := s.Repos.Proposal.GetByID(projectID, proposalID)
	if err != nil {
		return models.Proposal{}, err
	}

	copyProposal := models.Proposal{
		ProjectID:       projectID,
		SourceRequestID: source.SourceRequestID,
		Title:           source.Title + " (copy)",
		Description:     source.Description,
		Status:          models.ProposalStatusDraft,
		Amount:          source.Amount,
		EstimatedHours:  source.EstimatedHours,
	}
	if err := s.Repos.Proposal.Create(&copyProposal); err != nil {
		return models.Proposal{}, err
	}
	s.invalidate(projectID, copyProposal.ID)
	s.publish(events.ProposalCreated, projectID, copyProposal.ID)
	return copyProposal, nil
}
