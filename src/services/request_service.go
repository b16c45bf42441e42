package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/analyzer"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/models"
	"github.com/scopetrack/scopetrack-go/src/repositories"
)

// RequestService owns the client-request state machine. Every command
// validates locally first; repository writes happen only for transitions
// that actually change state, and cache invalidation only after a write
// succeeds.
type RequestService struct {
	Repos    *repositories.Repos
	Cache    *cache.Store
	Hub      *events.Hub
	Analyzer *analyzer.Analyzer
	Policy   analyzer.EffortPolicy
}

func NewRequestService(repos *repositories.Repos, store *cache.Store, hub *events.Hub, an *analyzer.Analyzer, policy analyzer.EffortPolicy) *RequestService {
	return &RequestService{Repos: repos, Cache: store, Hub: hub, Analyzer: an, Policy: policy}
}

// invalidate applies the declared key set for request mutations.
func (s *RequestService) invalidate(projectID, requestID uuid.UUID) {
	s.Cache.Invalidate(
		cache.RequestList(projectID),
		cache.RequestDetail(projectID, requestID),
		cache.ProjectDetail(projectID),
		cache.Dashboard(projectID),
	)
}

func (s *RequestService) publish(t events.EventType, projectID, requestID uuid.UUID) {
	if s.Hub != nil {
		s.Hub.Publish(events.Event{Type: t, ProjectID: projectID, EntityID: requestID})
	}
}

func (s *RequestService) Create(projectID uuid.UUID, input dto.CreateRequestDTO) (models.ClientRequest, error) {
	if _, err := s.Repos.Project.GetByID(projectID); err != nil {
		return models.ClientRequest{}, err
	}

	source := models.RequestSourceEmail
	if input.Source != "" {
		source = models.RequestSource(input.Source)
	}

	req := models.ClientRequest{
		ProjectID:      projectID,
		Title:          input.Title,
		Content:        input.Content,
		Source:         source,
		Status:         models.RequestStatusNew,
		Classification: models.ClassificationPending,
	}
	if err := s.Repos.Request.Create(&req); err != nil {
		return models.ClientRequest{}, err
	}

	autoAnalyze := input.AutoAnalyze == nil || *input.AutoAnalyze
	if autoAnalyze {
		if analyzed, err := s.applyAnalysis(&req); err == nil {
			req = analyzed
		}
		// analysis failure leaves the request logged but unclassified
	}

	s.invalidate(projectID, req.ID)
	s.publish(events.RequestCreated, projectID, req.ID)
	return req, nil
}

func (s *RequestService) Get(projectID, requestID uuid.UUID) (models.ClientRequest, error) {
	key := cache.RequestDetail(projectID, requestID)
	var cached models.ClientRequest
	if s.Cache.Get(key, &cached) {
		return cached, nil
	}

	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}
	s.Cache.Set(key, req)
	return req, nil
}

// List returns requests for a project, filtered in memory. The cache holds
// only the canonical unfiltered list, so active and history views can never
// disagree about the same request.
func (s *RequestService) List(projectID uuid.UUID, filter dto.RequestListFilter) ([]models.ClientRequest, error) {
	all, err := s.canonicalList(projectID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.ClientRequest, 0, len(all))
	for _, r := range all {
		if filter.Status != "" && r.Status != models.RequestStatus(filter.Status) {
			continue
		}
		if filter.Classification != "" && r.Classification != models.ScopeClassification(filter.Classification) {
			continue
		}
		if filter.ActiveOnly && !r.Status.Active() {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func (s *RequestService) canonicalList(projectID uuid.UUID) ([]models.ClientRequest, error) {
	key := cache.RequestList(projectID)
	var cached []models.ClientRequest
	if s.Cache.Get(key, &cached) {
		return cached, nil
	}

	all, err := s.Repos.Request.ListByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(key, all)
	return all, nil
}

func (s *RequestService) Update(projectID, requestID uuid.UUID, input dto.UpdateRequestDTO) (models.ClientRequest, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}

	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.Content != nil {
		req.Content = *input.Content
	}
	if input.Source != nil {
		req.Source = models.RequestSource(*input.Source)
	}
	if input.LinkedScopeItemID != nil {
		item, err := s.Repos.ScopeItem.GetByID(*input.LinkedScopeItemID)
		if err != nil || item.ProjectID != projectID {
			return models.ClientRequest{}, &TransitionError{Message: "scope item not found in this project"}
		}
		req.LinkedScopeItemID = input.LinkedScopeItemID
	}

	if err := s.Repos.Request.Update(&req); err != nil {
		return models.ClientRequest{}, err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestUpdated, projectID, requestID)
	return req, nil
}

func (s *RequestService) Delete(projectID, requestID uuid.UUID) error {
	if _, err := s.Repos.Request.GetByID(projectID, requestID); err != nil {
		return err
	}
	if err := s.Repos.Request.Delete(projectID, requestID); err != nil {
		return err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestDeleted, projectID, requestID)
	return nil
}

// Classify applies a manual triage verdict. Only active requests may be
// re-classified; requesting the current classification is a user-visible
// notice and issues no write.
func (s *RequestService) Classify(projectID, requestID uuid.UUID, target models.ScopeClassification) (models.ClientRequest, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}

	if !req.Status.Active() {
		return req, &TransitionError{Message: fmt.Sprintf("request is %s; classification is frozen", req.Status)}
	}
	if req.Classification == target {
		return req, &NoticeError{Message: fmt.Sprintf("request is already classified as %s", target)}
	}

	req.Classification = target
	req.Status = models.RequestStatusAnalyzed
	if err := s.Repos.Request.Update(&req); err != nil {
		return models.ClientRequest{}, err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestUpdated, projectID, requestID)
	return req, nil
}

// Analyze runs the rule engine against the project's scope items and stores
// the verdict.
func (s *RequestService) Analyze(projectID, requestID uuid.UUID) (models.ClientRequest, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}
	if !req.Status.Active() {
		return req, &TransitionError{Message: fmt.Sprintf("request is %s; classification is frozen", req.Status)}
	}

	analyzed, err := s.applyAnalysis(&req)
	if err != nil {
		return models.ClientRequest{}, err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestUpdated, projectID, requestID)
	return analyzed, nil
}

func (s *RequestService) applyAnalysis(req *models.ClientRequest) (models.ClientRequest, error) {
	items, err := s.Repos.ScopeItem.ListByProjectID(req.ProjectID)
	if err != nil {
		return models.ClientRequest{}, err
	}

	result := s.Analyzer.Classify(req.Content, items)
	confidence := result.Confidence
	req.Classification = result.Classification
	req.Confidence = &confidence
	req.AnalysisReasoning = result.Reasoning
	req.SuggestedAction = result.SuggestedAction
	req.CreepIndicators = result.CreepIndicators
	req.LinkedScopeItemID = result.MatchedScopeItem
	req.Status = models.RequestStatusAnalyzed

	if err := s.Repos.Request.Update(req); err != nil {
		return models.ClientRequest{}, err
	}
	return *req, nil
}

func (s *RequestService) MarkAddressed(projectID, requestID uuid.UUID) (models.ClientRequest, error) {
	return s.setStatus(projectID, requestID, models.RequestStatusAddressed, "request is already addressed")
}

func (s *RequestService) Dismiss(projectID, requestID uuid.UUID) (models.ClientRequest, error) {
	return s.setStatus(projectID, requestID, models.RequestStatusDeclined, "request is already declined")
}

func (s *RequestService) setStatus(projectID, requestID uuid.UUID, target models.RequestStatus, notice string) (models.ClientRequest, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}
	if req.Status == target {
		return req, &NoticeError{Message: notice}
	}

	req.Status = target
	if err := s.Repos.Request.Update(&req); err != nil {
		return models.ClientRequest{}, err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestUpdated, projectID, requestID)
	return req, nil
}

// Restore re-admits a request to the active set: status new, classification
// pending, regardless of prior state.
func (s *RequestService) Restore(projectID, requestID uuid.UUID) (models.ClientRequest, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}
	if req.Status == models.RequestStatusNew && req.Classification == models.ClassificationPending {
		return req, &NoticeError{Message: "request is already new and unclassified"}
	}

	req.Status = models.RequestStatusNew
	req.Classification = models.ClassificationPending
	if err := s.Repos.Request.Update(&req); err != nil {
		return models.ClientRequest{}, err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestUpdated, projectID, requestID)
	return req, nil
}

// Suggest assembles the advisory proposal panel: detected indicators, an
// effort estimate and, when the project has an hourly rate, an amount.
func (s *RequestService) Suggest(projectID, requestID uuid.UUID) (analyzer.Suggestion, error) {
	req, err := s.Get(projectID, requestID)
	if err != nil {
		return analyzer.Suggestion{}, err
	}
	project, err := s.Repos.Project.GetByID(projectID)
	if err != nil {
		return analyzer.Suggestion{}, err
	}
	return analyzer.Suggest(req.Content, s.Analyzer.Phrases.ScopeCreep, s.Policy, project.HourlyRate), nil
}

// AttachFile records the object key of an uploaded attachment.
func (s *RequestService) AttachFile(projectID, requestID uuid.UUID, key string) (models.ClientRequest, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.ClientRequest{}, err
	}

	req.AttachmentKey = key
	if err := s.Repos.Request.Update(&req); err != nil {
		return models.ClientRequest{}, err
	}
	s.invalidate(projectID, requestID)
	s.publish(events.RequestUpdated, projectID, requestID)
	return req, nil
}

// CreateProposalFrom is a two-step saga: create a proposal referencing the
// request, then advance the request to proposal_sent. A step-two failure
// surfaces as PartialCompletionError so the caller can reconcile; the
// proposal-side cache is already invalidated at that point, the request-side
// cache is left untouched (last known good).
func (s *RequestService) CreateProposalFrom(projectID, requestID uuid.UUID, input dto.ProposalFromRequestDTO) (models.Proposal, error) {
	req, err := s.Repos.Request.GetByID(projectID, requestID)
	if err != nil {
		return models.Proposal{}, err
	}

	description := fmt.Sprintf("This proposal addresses the following request:\n\n%s", req.Content)
	if req.AnalysisReasoning != "" {
		description += fmt.Sprintf("\n\nAnalysis:\n%s", req.AnalysisReasoning)
	}

	sourceID := req.ID
	proposal := models.Proposal{
		ProjectID:       projectID,
		SourceRequestID: &sourceID,
		Title:           fmt.Sprintf("Proposal: %s", req.Title),
		Description:     description,
		Status:          models.ProposalStatusDraft,
		Amount:          input.Amount,
		EstimatedHours:  input.EstimatedHours,
	}
	if err := s.Repos.Proposal.Create(&proposal); err != nil {
		return models.Proposal{}, err
	}
	s.Cache.Invalidate(
		cache.ProposalList(projectID),
		cache.ProjectDetail(projectID),
		cache.Dashboard(projectID),
	)
	s.publish(events.ProposalCreated, projectID, proposal.ID)

	req.Status = models.RequestStatusProposalSent
	if err := s.Repos.Request.Update(&req); err != nil {
		return proposal, &PartialCompletionError{ProposalID: proposal.ID.String(), Err: err}
	}
	s.Cache.Invalidate(
		cache.RequestList(projectID),
		cache.RequestDetail(projectID, requestID),
	)
	s.publish(events.RequestUpdated, projectID, requestID)
	return proposal, nil
}
