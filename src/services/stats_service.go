package services

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/repositories"
)

// Dashboard is the combined per-project view served under the dashboard key
// family.
type Dashboard struct {
	Requests  RequestStats  `json:"requests"`
	Proposals ProposalStats `json:"proposals"`
}

// StatsService recomputes derived counts from the authoritative collections
// on every read. Stats are cached only as part of the dashboard entry, which
// every mutation's declared key set invalidates.
type StatsService struct {
	Repos *repositories.Repos
	Cache *cache.Store
}

func NewStatsService(repos *repositories.Repos, store *cache.Store) *StatsService {
	return &StatsService{Repos: repos, Cache: store}
}

func (s *StatsService) RequestStats(projectID uuid.UUID) (RequestStats, error) {
	requests, err := s.Repos.Request.ListByProjectID(projectID)
	if err != nil {
		return RequestStats{}, err
	}
	return ComputeRequestStats(requests), nil
}

func (s *StatsService) ProposalStats(projectID uuid.UUID) (ProposalStats, error) {
	proposals, err := s.Repos.Proposal.ListByProjectID(projectID)
	if err != nil {
		return ProposalStats{}, err
	}
	return ComputeProposalStats(proposals), nil
}

func (s *StatsService) Dashboard(projectID uuid.UUID) (Dashboard, error) {
	key := cache.Dashboard(projectID)
	var cached Dashboard
	if s.Cache.Get(key, &cached) {
		return cached, nil
	}

	requestStats, err := s.RequestStats(projectID)
	if err != nil {
		return Dashboard{}, err
	}
	proposalStats, err := s.ProposalStats(projectID)
	if err != nil {
		return Dashboard{}, err
	}

	dash := Dashboard{Requests: requestStats, Proposals: proposalStats}
	s.Cache.Set(key, dash)
	return dash, nil
}
